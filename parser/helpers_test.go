package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripMarkdownPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"# Title":         "Title",
		"## Sub":          "Sub",
		"#":               "",
		"#####":           "",
		"# # # nested":    "nested",
		"  spaced":        "spaced",
		"Body text":       "Body text",
		"text # trailing": "text # trailing",
		"#hashtag":        "hashtag",
		"":                "",
	}
	for in, want := range cases {
		require.Equal(t, want, stripMarkdownPrefix(in), "input %q", in)
	}
}

func TestSplitIntoLines(t *testing.T) {
	t.Parallel()

	require.Nil(t, splitIntoLines(""))
	require.Equal(t, []string{""}, splitIntoLines("\n"))
	require.Equal(t, []string{"a"}, splitIntoLines("a"))
	require.Equal(t, []string{"a"}, splitIntoLines("a\n"))
	require.Equal(t, []string{"a", ""}, splitIntoLines("a\n\n"))
	require.Equal(t, []string{"a", "b"}, splitIntoLines("a\r\nb\r\n"))
}

func TestAppendContentWithoutOpenCell(t *testing.T) {
	t.Parallel()

	state := newScanState()
	require.False(t, state.appendContent("orphan", 1))
	require.False(t, state.appendContent("   ", 2))
	require.Len(t, state.warnings, 1)

	state.open(KindMarkdown, 3)
	require.True(t, state.appendContent("# kept", 4))
	doc := state.document()
	require.Len(t, doc.Cells, 1)
	require.Equal(t, []string{"kept"}, doc.Cells[0].Content)
}

func TestClassifyLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, lineDescription, classifyLine("#  DESCRIPTION x"))
	require.Equal(t, lineMarkdown, classifyLine("# MARKDOWN CELL"))
	require.Equal(t, lineCode, classifyLine("# CODE CELL"))
	require.Equal(t, lineContent, classifyLine(" # CODE CELL"))
	require.Equal(t, lineContent, classifyLine("# code cell"))
	require.Equal(t, lineContent, classifyLine("#   DESCRIPTION"))
}

func TestGetAllMarkersInfo(t *testing.T) {
	t.Parallel()

	markers := GetAllMarkersInfo()
	require.Len(t, markers, 3)
	require.Equal(t, MarkerDescription, markers[0].Prefix)
	require.Equal(t, MarkerMarkdown, markers[1].Prefix)
	require.Equal(t, MarkerCode, markers[2].Prefix)
	for _, m := range markers {
		require.NotEmpty(t, m.Description)
		require.Equal(t, m.Prefix, m.Example[:len(m.Prefix)])
	}
}
