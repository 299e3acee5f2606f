package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirRejectsNonDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	_, err := Dir(context.Background(), file)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestDirBuildsTreeSkippingHiddenEntries(t *testing.T) {
	defer leaktest.Check(t)()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("b"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("h"), 0600))

	tree, err := Dir(context.Background(), root)
	require.NoError(t, err)

	var paths []string
	for _, n := range tree.Nodes() {
		paths = append(paths, n.Path())
	}
	sort.Strings(paths)
	assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt"}, paths)

	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, abs, tree.BasePath())
}

func TestDirProducesDenseIds(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0700))
		for i := 0; i < 3; i++ {
			require.NoError(t, os.WriteFile(filepath.Join(root, name, name+string(rune('0'+i))), []byte("x"), 0600))
		}
	}

	tree, err := Dir(context.Background(), root)
	require.NoError(t, err)
	// 3 directories + 9 files = 12 entries, densely numbered 1..12.
	assert.Equal(t, uint64(12), uint64(tree.MaxEntryId()))
}
