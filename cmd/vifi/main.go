// Command vifi reconciles a filesystem directory tree with a
// hand-edited manifest: scan a directory into a manifest, edit it, then
// run move to compute and apply the filesystem operations that turn the
// directory into what the edited manifest describes.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mbrt/vifi/internal/config"
	"github.com/mbrt/vifi/internal/fsexec"
	"github.com/mbrt/vifi/internal/manifest"
	"github.com/mbrt/vifi/internal/planner"
	"github.com/mbrt/vifi/internal/scan"
	"github.com/mbrt/vifi/internal/vifitree"
)

// To set this at build time: go build -ldflags '-X main.version=something'.
var version = "unknown"

const copyrightNotice = `ViFi - reconcile a directory tree with an edited manifest.
Distributed under the terms stated in the project's license file.
`

// Exit codes: success (or cancel at the prompt), bad input, unexpected
// failure. Failure is 2 rather than the original tool's negative code.
const (
	exitOK      = 0
	exitInput   = 1
	exitFailure = 2
)

var globalContext struct {
	base      string
	verbosity string
}

func exitUsage(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	fmt.Fprintf(os.Stderr, `Usage: %s COMMAND [ARGS]

Commands:

	scan <dir> <manifest>          scan a directory into a manifest file
	move <original> <edited>       reconcile the filesystem with an edited manifest
	copyright                      print copyright notice
	version                        print version information
`, os.Args[0])
	os.Exit(exitInput)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&globalContext.base, "base", config.DefaultBaseDirectoryPath, "`directory` for the log file")
	var levels []string
	for _, l := range log.AllLevels {
		levels = append(levels, l.String())
	}
	fs.StringVar(&globalContext.verbosity, "verbosity", "warning", "sets the log `level`, among "+strings.Join(levels, ", "))
	return fs
}

func main() {
	if len(os.Args) < 2 {
		exitUsage("command name required")
	}
	cmd := os.Args[1]

	fs := newFlagSet(cmd)
	_ = fs.Parse(os.Args[2:])

	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(globalContext.verbosity)
	if err != nil {
		log.Fatalf("could not parse log level %q: %v", globalContext.verbosity, err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if cfg, cerr := config.Load(globalContext.base); cerr == nil {
		if f, ferr := os.OpenFile(cfg.LogFilePath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); ferr == nil {
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	}

	switch cmd {
	case "scan":
		runScan(fs.Args())
	case "move":
		runMove(fs.Args())
	case "copyright":
		fmt.Print(copyrightNotice)
	case "version":
		fmt.Println(version)
	default:
		exitUsage(fmt.Sprintf("%q: command not recognized", cmd))
	}
}

func runScan(args []string) {
	if len(args) != 2 {
		exitUsage("scan: expected <dir> <manifest>")
	}
	dir, manifestPath := args[0], args[1]

	tree, err := scan.Dir(context.Background(), dir)
	if err != nil {
		printChain(err)
		os.Exit(exitFailure)
	}
	if err := manifest.WriteFile(manifestPath, tree); err != nil {
		printChain(err)
		os.Exit(exitFailure)
	}
}

func runMove(args []string) {
	if len(args) != 2 {
		exitUsage("move: expected <original-manifest> <edited-manifest>")
	}
	originalPath, editedPath := args[0], args[1]

	tree := vifitree.New()
	if err := manifest.ReadFile(originalPath, tree); err != nil {
		printChain(err)
		os.Exit(exitInput)
	}
	if err := tree.EndOriginal(); err != nil {
		printChain(err)
		os.Exit(exitInput)
	}
	if err := manifest.ReadFile(editedPath, tree); err != nil {
		printChain(err)
		os.Exit(exitInput)
	}
	tree.EndTarget()

	seq := planner.Generate(tree)
	if err := seq.Prepare(); err != nil {
		printChain(err)
		os.Exit(exitInput)
	}

	if seq.Empty() {
		fmt.Println("No changes detected.")
		return
	}

	seq.Print(os.Stdout, tree.BasePath())
	fmt.Print("Do you want to execute operations? [y|n] ")

	if !confirm() {
		fmt.Println("Cancel.")
		os.Exit(exitOK)
	}

	ex, err := fsexec.New(filepath.Dir(originalPath), tree.MaxEntryId())
	if err != nil {
		printChain(err)
		os.Exit(exitFailure)
	}

	fmt.Println("Executing operations...")
	if err := seq.Run(ex); err != nil {
		printChain(err)
		os.Exit(exitFailure)
	}
	if err := ex.Finish(); err != nil {
		printChain(err)
		os.Exit(exitFailure)
	}
	fmt.Println("Done.")
}

// confirm reads lines from stdin until one is "y"/"yes" (true) or
// "n"/"no" (false), ignoring case and surrounding spaces and reprompting
// on anything else; end of input counts as no.
func confirm() bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Print("Type 'y' for yes (proceed), 'n' for no (cancel): ")
		}
	}
}

// printChain prints err and every wrapped cause beneath it, indented one
// level per step, the way the original tool's printException walks
// std::nested_exception.
func printChain(err error) {
	depth := 0
	for err != nil {
		fmt.Fprintf(os.Stderr, "%s%s\n", strings.Repeat("  ", depth), err.Error())
		cause := errors.Unwrap(err)
		if cause == nil {
			break
		}
		err = cause
		depth++
	}
}
