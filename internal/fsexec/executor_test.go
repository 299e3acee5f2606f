package fsexec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnusableParent(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), 0)
	assert.ErrorIs(t, err, ErrUnusableTempDir)
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("", 0)
	assert.ErrorIs(t, err, ErrUnusableTempDir)
}

func TestCopyOutCopyIn(t *testing.T) {
	defer leaktest.Check(t)()

	root := t.TempDir()
	src := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0600))

	ex, err := New(root, 5)
	require.NoError(t, err)
	require.DirExists(t, ex.Dir())

	require.NoError(t, ex.CopyOut(3, src))
	require.FileExists(t, src) // copy, not move: source survives

	dst := filepath.Join(root, "b.txt")
	require.NoError(t, ex.CopyIn(3, dst))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	// Staging content for id 3 is still there: MoveIn below consumes it.
	require.NoError(t, ex.MoveIn(3, filepath.Join(root, "c.txt")))
	assert.NoFileExists(t, filepath.Join(ex.Dir(), "03"))

	require.NoError(t, ex.Finish())
	assert.NoDirExists(t, ex.Dir())
}

func TestMoveOutMoveIn(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0600))

	ex, err := New(root, 1)
	require.NoError(t, err)

	require.NoError(t, ex.MoveOut(1, dir))
	assert.NoDirExists(t, dir)

	target := filepath.Join(root, "moved")
	require.NoError(t, ex.MoveIn(1, target))
	assert.FileExists(t, filepath.Join(target, "f.txt"))
	require.NoError(t, ex.Finish())
}

func TestRemoveAndCreateDir(t *testing.T) {
	root := t.TempDir()
	ex, err := New(root, 0)
	require.NoError(t, err)

	newDir := filepath.Join(root, "newdir")
	require.NoError(t, ex.CreateDir(newDir))
	assert.DirExists(t, newDir)

	require.NoError(t, ex.Remove(newDir))
	assert.NoDirExists(t, newDir)
	require.NoError(t, ex.Finish())
}

func TestFinishRejectsNonEmptyStaging(t *testing.T) {
	root := t.TempDir()
	ex, err := New(root, 2)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0600))
	require.NoError(t, ex.CopyOut(2, filepath.Join(root, "a.txt")))

	err = ex.Finish()
	assert.Error(t, err)
	assert.DirExists(t, ex.Dir())
}
