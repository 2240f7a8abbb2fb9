// Package notebook models the subset of the Jupyter nbformat v4 document that
// jinc produces, and writes it in the layout nbformat itself uses.
package notebook

import (
	"strings"

	"github.com/google/uuid"
)

const (
	FormatMajor = 4
	FormatMinor = 5
	Extension   = ".ipynb"
)

// CellType is the nbformat cell_type value.
type CellType string

const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
)

// Cell is a notebook cell. Outputs and execution counts are never populated:
// jinc writes notebooks that have not been run.
type Cell struct {
	ID       string
	Type     CellType
	Source   string
	Metadata map[string]any
}

// Kernelspec identifies the kernel a notebook should open with.
type Kernelspec struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language,omitempty"`
	Name        string `json:"name"`
}

// Metadata is the notebook-level metadata. Fields are declared in key order.
type Metadata struct {
	Kernelspec *Kernelspec `json:"kernelspec,omitempty"`
	Title      string      `json:"title,omitempty"`
}

// Notebook is an nbformat v4 notebook.
type Notebook struct {
	Cells         []*Cell
	Metadata      Metadata
	NBFormat      int
	NBFormatMinor int
}

// NewNotebook returns an empty v4.5 notebook.
func NewNotebook() *Notebook {
	return &Notebook{
		Cells:         []*Cell{},
		NBFormat:      FormatMajor,
		NBFormatMinor: FormatMinor,
	}
}

// NewMarkdownCell returns a markdown cell holding text.
func NewMarkdownCell(text string) *Cell {
	return newCell(CellMarkdown, text)
}

// NewCodeCell returns an unexecuted code cell holding text.
func NewCodeCell(text string) *Cell {
	return newCell(CellCode, text)
}

func newCell(cellType CellType, text string) *Cell {
	return &Cell{
		ID:       NewCellID(),
		Type:     cellType,
		Source:   text,
		Metadata: map[string]any{},
	}
}

// NewCellID returns a random 8 character hex id, the same shape nbformat generates.
func NewCellID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Append adds cells to the notebook in order.
func (nb *Notebook) Append(cells ...*Cell) {
	nb.Cells = append(nb.Cells, cells...)
}

// splitSource splits text into lines that keep their trailing newline, the
// list form nbformat stores multi-line strings in.
func splitSource(text string) []string {
	lines := []string{}
	for text != "" {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:idx+1])
		text = text[idx+1:]
	}
	return lines
}
