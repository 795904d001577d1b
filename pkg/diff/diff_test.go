package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifiedIdenticalContent(t *testing.T) {
	t.Parallel()

	lines := []string{"display: flex", "flex-wrap: wrap"}
	require.Empty(t, Unified(lines, lines, "before", "after"))
	require.False(t, Changed(Lines(lines, lines)))
}

func TestLinesSingleChange(t *testing.T) {
	t.Parallel()

	before := []string{"display: flex", "margin-left: -8px", "margin-right: -8px"}
	after := []string{"display: flex", "margin-left: -4px", "margin-right: -4px"}

	lines := Lines(before, after)
	require.True(t, Changed(lines))
	require.Contains(t, lines, Line{Op: OpEqual, Text: "display: flex"})
	require.Contains(t, lines, Line{Op: OpDelete, Text: "margin-left: -8px"})
	require.Contains(t, lines, Line{Op: OpInsert, Text: "margin-left: -4px"})
	require.NotContains(t, lines, Line{Op: OpDelete, Text: "display: flex"})
}

func TestUnifiedHeaders(t *testing.T) {
	t.Parallel()

	out := Unified([]string{"display: block"}, []string{"display: flex"}, "render 1", "render 2")
	require.Equal(t, "--- render 1\n+++ render 2\n@@ -1,1 +1,1 @@\n-display: block\n+display: flex\n", out)
}

func TestLinesFromEmpty(t *testing.T) {
	t.Parallel()

	lines := Lines(nil, []string{"display: flex"})
	require.Equal(t, []Line{{Op: OpInsert, Text: "display: flex"}}, lines)
}
