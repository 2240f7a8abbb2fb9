package notebook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var cellIDPattern = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestNewCells(t *testing.T) {
	md := NewMarkdownCell("# Hi")
	require.Equal(t, CellMarkdown, md.Type)
	require.Regexp(t, cellIDPattern, md.ID)
	require.NotNil(t, md.Metadata)

	code := NewCodeCell("x = 1")
	require.Equal(t, CellCode, code.Type)
	require.NotEqual(t, md.ID, code.ID)
}

func TestSplitSource(t *testing.T) {
	require.Equal(t, []string{}, splitSource(""))
	require.Equal(t, []string{"a"}, splitSource("a"))
	require.Equal(t, []string{"a\n", "b"}, splitSource("a\nb"))
	require.Equal(t, []string{"a\n", "\n"}, splitSource("a\n\n"))
}

func TestMarshalLayout(t *testing.T) {
	nb := NewNotebook()
	nb.Append(
		&Cell{ID: "aaaa1111", Type: CellMarkdown, Source: "# Title\n<b>bold</b>"},
		&Cell{ID: "bbbb2222", Type: CellCode, Source: "print(1)"},
	)

	data, err := Marshal(nb)
	require.NoError(t, err)

	want := `{
 "cells": [
  {
   "cell_type": "markdown",
   "id": "aaaa1111",
   "metadata": {},
   "source": [
    "# Title\n",
    "<b>bold</b>"
   ]
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "id": "bbbb2222",
   "metadata": {},
   "outputs": [],
   "source": [
    "print(1)"
   ]
  }
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}
`
	require.Equal(t, want, string(data))
}

func TestMarshalKeepsHTMLCharacters(t *testing.T) {
	code := &Cell{ID: "cccc3333", Type: CellCode, Source: "if a < b && c > d:\n    pass"}
	data, err := code.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(data), `"if a < b && c > d:\n"`)
	require.NotContains(t, string(data), `\u003c`)

	nb := NewNotebook()
	nb.Append(code, &Cell{ID: "dddd4444", Type: CellMarkdown, Source: "<i>R&D</i>"})
	data, err = Marshal(nb)
	require.NoError(t, err)
	require.Contains(t, string(data), `"<i>R&D</i>"`)
	require.NotContains(t, string(data), `\u0026`)
	require.NoError(t, Validate(nb))
}

func TestMarshalMetadata(t *testing.T) {
	nb := NewNotebook()
	nb.Metadata.Title = "Lists"
	nb.Metadata.Kernelspec = &Kernelspec{Name: "python3", DisplayName: "Python 3", Language: "python"}

	data, err := Marshal(nb)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	meta := decoded["metadata"].(map[string]any)
	require.Equal(t, "Lists", meta["title"])
	require.Equal(t, "python3", meta["kernelspec"].(map[string]any)["name"])
	require.NoError(t, Validate(nb))
}

func TestValidateRejectsBadCells(t *testing.T) {
	nb := NewNotebook()
	nb.Append(&Cell{ID: "has space", Type: CellCode, Source: "x"})
	err := Validate(nb)
	require.ErrorIs(t, err, ErrInvalidNotebook)

	nb = NewNotebook()
	nb.Append(&Cell{ID: "abc", Type: "raw"})
	_, err = Marshal(nb)
	require.Error(t, err)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ipynb")

	nb := NewNotebook()
	nb.Append(NewMarkdownCell("# Description\n\nhello"), NewCodeCell("print(1)"))
	require.NoError(t, Write(nb, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Cells []struct {
			CellType string   `json:"cell_type"`
			Source   []string `json:"source"`
		} `json:"cells"`
		NBFormat int `json:"nbformat"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 4, decoded.NBFormat)
	require.Len(t, decoded.Cells, 2)
	require.Equal(t, []string{"# Description\n", "\n", "hello"}, decoded.Cells[0].Source)
	require.Equal(t, "code", decoded.Cells[1].CellType)
}

func TestWriteToMissingDirectory(t *testing.T) {
	err := Write(NewNotebook(), filepath.Join(t.TempDir(), "missing", "out.ipynb"))
	require.Error(t, err)
}

func TestExtractTitle(t *testing.T) {
	require.Equal(t, "Intro", ExtractTitle("Some text", "# Intro\nbody"))
	require.Equal(t, "Setext code title", ExtractTitle("Setext `code` title\n===\n\nbody"))
	require.Equal(t, "Second level", ExtractTitle("## Second level", "plain"))
	require.Equal(t, "Top", ExtractTitle("## Sub", "# Top"))
	require.Equal(t, "", ExtractTitle("no headings here", ""))
}
