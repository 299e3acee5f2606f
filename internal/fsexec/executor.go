// Package fsexec implements planner.Executor against the local
// filesystem, staging moved-out content under a temporary directory
// named after each entry's id.
package fsexec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mbrt/vifi/internal/vifitree"
)

// Executor runs planner operations against the local filesystem, using
// dir as staging space for content that must outlive its source path
// until a later operation consumes it.
type Executor struct {
	dir   string
	width int
}

// New creates a fresh staging directory under parentDir (which must
// already exist) and returns an Executor that uses it. maxEntryID sizes
// the staging file names so that callers inspecting the directory by
// hand see ids rendered at a consistent width.
func New(parentDir string, maxEntryID vifitree.Id) (*Executor, error) {
	if parentDir == "" {
		return nil, errorf("New", "%w: empty parent path", ErrUnusableTempDir)
	}
	dir, err := os.MkdirTemp(parentDir, "vifi-staging-")
	if err != nil {
		return nil, errors.Wrapf(ErrUnusableTempDir, "%v", err)
	}
	return &Executor{dir: dir, width: hexWidth(maxEntryID)}, nil
}

// Dir returns the staging directory's path, mostly useful for logging
// and tests.
func (e *Executor) Dir() string { return e.dir }

func hexWidth(maxID vifitree.Id) int {
	width := 2
	for v := uint64(maxID) >> 8; v > 0; v >>= 8 {
		width += 2
	}
	return width
}

// Finish removes the staging directory, but only if it ended up empty:
// a non-empty directory means some planned move never happened, and
// silently discarding its content would be a data loss bug worth
// surfacing instead.
func (e *Executor) Finish() error {
	if e.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errorf("Finish", "%v", err)
	}
	if len(entries) > 0 {
		return errorf("Finish", "staging directory %q not empty", e.dir)
	}
	if err := os.Remove(e.dir); err != nil {
		return errorf("Finish", "%v", err)
	}
	e.dir = ""
	return nil
}

func (e *Executor) temporary(id vifitree.Id) string {
	return filepath.Join(e.dir, fmt.Sprintf("%0*x", e.width, uint64(id)))
}

// CopyOut implements planner.Executor.
func (e *Executor) CopyOut(id vifitree.Id, source string) error {
	if err := copyRecursive(source, e.temporary(id)); err != nil {
		return errorf("CopyOut", "%v", err)
	}
	return nil
}

// MoveOut implements planner.Executor.
func (e *Executor) MoveOut(id vifitree.Id, source string) error {
	if err := os.Rename(source, e.temporary(id)); err != nil {
		return errorf("MoveOut", "%v", err)
	}
	return nil
}

// Remove implements planner.Executor.
func (e *Executor) Remove(source string) error {
	if err := os.RemoveAll(source); err != nil {
		return errorf("Remove", "%v", err)
	}
	return nil
}

// CopyIn implements planner.Executor.
func (e *Executor) CopyIn(id vifitree.Id, target string) error {
	if err := copyRecursive(e.temporary(id), target); err != nil {
		return errorf("CopyIn", "%v", err)
	}
	return nil
}

// MoveIn implements planner.Executor.
func (e *Executor) MoveIn(id vifitree.Id, target string) error {
	if err := os.Rename(e.temporary(id), target); err != nil {
		return errorf("MoveIn", "%v", err)
	}
	return nil
}

// CreateDir implements planner.Executor.
func (e *Executor) CreateDir(target string) error {
	if err := os.Mkdir(target, 0700); err != nil {
		return errorf("CreateDir", "%v", err)
	}
	return nil
}

// copyRecursive copies source to target, walking source if it is a
// directory, preserving regular file permissions.
func copyRecursive(source, target string) error {
	info, err := os.Lstat(source)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(source, target, info)
	}
	if err := os.Mkdir(target, info.Mode().Perm()); err != nil {
		return err
	}
	return filepath.WalkDir(source, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == source {
			return nil
		}
		rel, err := filepath.Rel(source, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(target, rel)
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.Mkdir(dst, fi.Mode().Perm())
		}
		return copyFile(p, dst, fi)
	})
}

func copyFile(source, target string, info os.FileInfo) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
