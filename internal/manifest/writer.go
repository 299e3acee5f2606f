package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mbrt/vifi/internal/vifitree"
)

// WriteFile writes tree's manifest to path, creating or truncating it.
func WriteFile(path string, tree *vifitree.Tree) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errorf("WriteFile", "%v", err)
	}
	defer f.Close()
	if err := Write(f, tree); err != nil {
		return errorf("WriteFile", "writing %q: %v", path, err)
	}
	return nil
}

// Write renders tree as a manifest: a header line naming the base path,
// followed by one line per entry with a valid id, sorted recursively by
// name within each directory so the output is deterministic regardless
// of the order nodes were added in.
func Write(w io.Writer, tree *vifitree.Tree) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s%s\n", headerPrefix, tree.BasePath()); err != nil {
		return errorf("Write", "%v", err)
	}
	width := hexWidth(tree.MaxEntryId())
	if err := writeChildren(bw, tree, tree.BaseNode(), nil, width); err != nil {
		return err
	}
	return bw.Flush()
}

func writeChildren(w *bufio.Writer, tree *vifitree.Tree, dir *vifitree.Node, prefix []string, width int) error {
	for _, child := range tree.Children(dir) {
		path := make([]string, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = child.Name()

		if id, ok := child.Entry().IsEntry(); ok {
			if _, err := fmt.Fprintf(w, "%0*x\t%s\n", width, uint64(id), EscapePath(path)); err != nil {
				return errorf("Write", "%v", err)
			}
		}
		if err := writeChildren(w, tree, child, path, width); err != nil {
			return err
		}
	}
	return nil
}

// hexWidth returns the number of hex digits needed to express maxID,
// rounded up to whole bytes, minimum 2.
func hexWidth(maxID vifitree.Id) int {
	width := 2
	for v := uint64(maxID) >> 8; v > 0; v >>= 8 {
		width += 2
	}
	return width
}
