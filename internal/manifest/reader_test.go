package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrt/vifi/internal/vifitree"
)

func TestReadIntoRejectsMissingHeader(t *testing.T) {
	tree := vifitree.New()
	err := ReadInto(strings.NewReader("01\ta.txt\n"), tree)
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestReadIntoRejectsEmptyInput(t *testing.T) {
	tree := vifitree.New()
	err := ReadInto(strings.NewReader(""), tree)
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestReadIntoRejectsMalformedLine(t *testing.T) {
	tree := vifitree.New()
	err := ReadInto(strings.NewReader("# ViFi@/base\nno-tab-here\n"), tree)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestReadIntoRejectsZeroId(t *testing.T) {
	tree := vifitree.New()
	err := ReadInto(strings.NewReader("# ViFi@/base\n00\ta.txt\n"), tree)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestReadIntoRejectsDuplicatePath(t *testing.T) {
	tree := vifitree.New()
	err := ReadInto(strings.NewReader("# ViFi@/base\n01\ta.txt\n02\ta.txt\n"), tree)
	assert.ErrorIs(t, err, ErrDuplicatePath)
}

func TestReadIntoSkipsBlankLines(t *testing.T) {
	tree := vifitree.New()
	require.NoError(t, ReadInto(strings.NewReader("# ViFi@/base\n\n01\ta.txt\n\n"), tree))
	require.NoError(t, tree.EndOriginal())
	assert.Equal(t, vifitree.Id(1), tree.MaxEntryId())
}

func TestReadIntoSynthesizesIntermediateTargetDirectories(t *testing.T) {
	tree := vifitree.New()
	require.NoError(t, ReadInto(strings.NewReader("# ViFi@/base\n01\ttop.txt\n02\tmoved.txt\n"), tree))
	require.NoError(t, tree.EndOriginal())

	require.NoError(t, ReadInto(strings.NewReader("# ViFi@/base\n01\ttop.txt\n02\tnew/deep/moved.txt\n"), tree))
	tree.EndTarget()

	var found *vifitree.Node
	for _, n := range tree.Nodes() {
		if n.Name() == "moved.txt" {
			if id, ok := n.Target().IsEntry(); ok && id == 2 {
				found = n
			}
		}
	}
	require.NotNil(t, found, "moved.txt should land as a target entry somewhere in the tree")
	assert.Equal(t, "new/deep/moved.txt", found.Path())
	assert.Equal(t, uint32(3), found.Level())
}

func TestReadFileWrapsPathInError(t *testing.T) {
	tree := vifitree.New()
	err := ReadFile("/nonexistent/path/to/manifest", tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}
