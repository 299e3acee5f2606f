package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	cases := [][]string{
		{"a", "b", "c"},
		{"plain"},
		{"has/slash", "normal"},
		{`has\backslash`, "normal"},
		{"both/and\\here"},
		{""},
	}
	for _, components := range cases {
		escaped := EscapePath(components)
		got := UnescapePath(escaped)
		assert.Equal(t, components, got, "round trip for %q", components)
	}
}

func TestEscapePathEscapesEmbeddedSlash(t *testing.T) {
	got := EscapePath([]string{"weird/name", "file.txt"})
	assert.Equal(t, `weird\/name/file.txt`, got)
}

func TestUnescapePathSplitsOnUnescapedSlashOnly(t *testing.T) {
	got := UnescapePath(`weird\/name/file.txt`)
	assert.Equal(t, []string{"weird/name", "file.txt"}, got)
}
