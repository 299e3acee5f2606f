package manifest

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mbrt/vifi/internal/vifitree"
)

const headerPrefix = "# ViFi@"

// ReadFile opens path and feeds its contents into tree via ReadInto,
// wrapping any error with the file path for diagnostics.
func ReadFile(path string, tree *vifitree.Tree) error {
	f, err := os.Open(path)
	if err != nil {
		return errorf("ReadFile", "%v", err)
	}
	defer f.Close()
	if err := ReadInto(f, tree); err != nil {
		return errors.Wrapf(err, "reading %q", path)
	}
	return nil
}

// ReadInto parses a manifest from r and feeds it into tree: the header
// line sets the base path, and entry lines are added through
// tree.AddEntry / tree.AddEntryWithId in path order, synthesizing
// intermediate directories for path components that have no line of
// their own. Entries may appear in any order in r; only their sorted
// traversal order affects which components are treated as
// intermediate.
func ReadInto(r io.Reader, tree *vifitree.Tree) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return errorf("ReadInto", "%w: empty input", ErrMissingHeader)
	}
	header := scanner.Text()
	if !strings.HasPrefix(header, headerPrefix) {
		return errorf("ReadInto", "%w: %q", ErrMissingHeader, header)
	}
	tree.SetBasePath(strings.TrimPrefix(header, headerPrefix))

	entries := make(map[string]vifitree.Id)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, '\t')
		if idx < 0 {
			return errorf("ReadInto", "%w: missing tab in %q", ErrMalformedLine, line)
		}
		idStr, path := line[:idx], line[idx+1:]
		id, err := strconv.ParseUint(idStr, 16, 64)
		if err != nil || id == 0 {
			return errorf("ReadInto", "%w: invalid entry id in %q", ErrMalformedLine, line)
		}
		if _, exists := entries[path]; exists {
			return errorf("ReadInto", "%w: %q", ErrDuplicatePath, path)
		}
		entries[path] = vifitree.Id(id)
	}
	if err := scanner.Err(); err != nil {
		return errorf("ReadInto", "%v", err)
	}

	return feedEntries(tree, entries)
}

// feedEntries walks entries in path order, comparing paths component by
// component (so a directory's descendants follow it directly, even when a
// sibling's name extends the directory's name), re-deriving the chain
// of ancestor directories from how far each path's components match the
// previous one, exactly as the reference manifest reader does: a
// directory that was never a dedicated entry line becomes an
// intermediate node with no forced id.
func feedEntries(tree *vifitree.Tree, entries map[string]vifitree.Id) error {
	paths := make([]string, 0, len(entries))
	for p := range entries {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		a, b := UnescapePath(paths[i]), UnescapePath(paths[j])
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})

	var previous []string
	parents := []*vifitree.Node{tree.BaseNode()}
	for _, p := range paths {
		id := entries[p]
		components := UnescapePath(p)
		n := len(components)
		if n == 0 || components[n-1] == "" {
			return errorf("ReadInto", "%w: empty path for entry %x", ErrMalformedLine, id)
		}

		level := 0
		for level < len(previous) && level < n && previous[level] == components[level] {
			level++
		}
		parents = parents[:level+1]

		name := components[level]
		for part := level + 1; part < n; part++ {
			node, err := tree.AddEntry(parents[level], name)
			if err != nil {
				return err
			}
			parents = append(parents, node)
			name = components[part]
			level++
		}

		node, err := tree.AddEntryWithId(parents[level], id, name)
		if err != nil {
			return err
		}
		parents = append(parents, node)
		previous = components
	}
	return nil
}
