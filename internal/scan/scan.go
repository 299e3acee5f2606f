// Package scan builds a fresh vifitree.Tree by recursively listing a
// directory on disk, assigning each regular file and subdirectory the
// next free entry id.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mbrt/vifi/internal/vifitree"
)

// maxConcurrency bounds how many subdirectories of one directory are
// listed at once, mirroring the teacher's child-loading semaphore. Each
// directory has a semaphore of its own, so the bound does not span the
// whole tree.
const maxConcurrency = 8

// Dir scans root into a new, already-finished original tree (EndOriginal
// has been called). Hidden entries (name starting with ".") and entries
// that are neither regular files nor directories are skipped.
func Dir(ctx context.Context, root string) (*vifitree.Tree, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errorf("Dir", "%v", err)
	}
	if !info.IsDir() {
		return nil, errorf("Dir", "%w: %q", ErrNotADirectory, root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errorf("Dir", "%v", err)
	}

	tree := vifitree.New()
	base := tree.SetBasePath(abs)

	var mu sync.Mutex
	if err := scanDir(ctx, tree, &mu, abs, base); err != nil {
		return nil, errorf("Dir", "scanning %q: %v", abs, err)
	}
	if err := tree.EndOriginal(); err != nil {
		return nil, errorf("Dir", "%v", err)
	}
	return tree, nil
}

// scanDir lists path synchronously, in name order, so that entries within
// one directory get increasing ids in name order (ids of directories
// scanned concurrently may interleave); it then recurses into
// subdirectories concurrently, at most maxConcurrency at a time for this
// directory, via an errgroup the way tree.grow in the teacher's
// internal/tree package fans out child loads.
func scanDir(ctx context.Context, tree *vifitree.Tree, mu *sync.Mutex, path string, dir *vifitree.Node) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	type subdir struct {
		node *vifitree.Node
		path string
	}
	var subdirs []subdir

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() && !info.IsDir() {
			continue
		}

		mu.Lock()
		node, err := tree.AddEntry(dir, name)
		mu.Unlock()
		if err != nil {
			return err
		}
		if info.IsDir() {
			subdirs = append(subdirs, subdir{node: node, path: filepath.Join(path, name)})
		}
	}

	semc := make(chan struct{}, maxConcurrency)
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range subdirs {
		s := s
		g.Go(func() error {
			select {
			case semc <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-semc }()
			return scanDir(gctx, tree, mu, s.path, s.node)
		})
	}
	return g.Wait()
}
