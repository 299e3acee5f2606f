package manifest

import (
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbrt/vifi/internal/vifitree"
)

func TestWriteReadRoundTrip(t *testing.T) {
	const input = "# ViFi@/base\n" +
		"01\tsub\n" +
		"02\tsub/a.txt\n" +
		"03\ttop.txt\n"

	tree := vifitree.New()
	require.NoError(t, ReadInto(strings.NewReader(input), tree))
	require.NoError(t, tree.EndOriginal())

	var buf strings.Builder
	require.NoError(t, Write(&buf, tree))

	if got := buf.String(); got != input {
		t.Errorf("round trip changed the manifest:\n%s", diff.LineDiff(input, got))
	}
}

func TestWriteOmitsNodesWithoutAnOriginalEntry(t *testing.T) {
	tree := vifitree.New()
	tree.SetBasePath("/base")
	_, err := tree.AddEntry(tree.BaseNode(), "a.txt")
	require.NoError(t, err)
	require.NoError(t, tree.EndOriginal())

	// A target-phase-only node (a freshly introduced directory, say) has
	// no original entry id and must not show up in the written manifest.
	_, err = tree.AddEntry(tree.BaseNode(), "newdir")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Write(&buf, tree))
	assert.Equal(t, "# ViFi@/base\n01\ta.txt\n", buf.String())
}

func TestHexWidthGrowsWithMaxId(t *testing.T) {
	tree := vifitree.New()
	tree.SetBasePath("/base")
	for i := 0; i < 257; i++ {
		_, err := tree.AddEntry(tree.BaseNode(), strings.Repeat("a", i+1))
		require.NoError(t, err)
	}
	require.NoError(t, tree.EndOriginal())

	var buf strings.Builder
	require.NoError(t, Write(&buf, tree))

	// 257 entries need ids up to 0x101: three hex digits round up to 4.
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	last := lines[len(lines)-1]
	idField := last[:strings.IndexByte(last, '\t')]
	assert.Len(t, idField, 4)
}
