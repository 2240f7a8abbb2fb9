package parser

import "strings"

// CellKind is the type of a notebook cell.
type CellKind string

const (
	KindMarkdown CellKind = "markdown"
	KindCode     CellKind = "code"
)

// Cell is a typed, ordered block of lines opened by a marker line.
type Cell struct {
	Kind       CellKind
	Content    []string
	LineNumber int // 1-based line of the opening marker
}

// Text returns the cell content joined with newlines.
func (c Cell) Text() string {
	return strings.Join(c.Content, "\n")
}

// Warning flags input that the scanner accepted but did not keep.
type Warning struct {
	Line    int
	Message string
}

// Document is the result of scanning a tagged script. HasDescription
// reports whether any description marker was seen, even one with an
// empty value.
type Document struct {
	Description    string
	HasDescription bool
	Cells          []Cell
	Warnings       []Warning
}

// scanState holds the accumulator threaded through a single scan
type scanState struct {
	current     *Cell
	cells       []Cell
	description string
	hasDesc     bool
	warnings    []Warning
}

// newScanState creates an empty scanState
func newScanState() *scanState {
	return &scanState{cells: []Cell{}}
}

// open finalizes the current cell, if any, and starts a new one
func (s *scanState) open(kind CellKind, lineNumber int) {
	s.finalize()
	s.current = &Cell{Kind: kind, Content: []string{}, LineNumber: lineNumber}
}

// finalize appends the open cell to the output. A cell with no kind is never kept.
func (s *scanState) finalize() {
	if s.current == nil || s.current.Kind == "" {
		return
	}
	s.cells = append(s.cells, *s.current)
	s.current = nil
}

// setDescription records a description value; the last one wins
func (s *scanState) setDescription(value string, lineNumber int) {
	if s.hasDesc {
		s.warnings = append(s.warnings, Warning{
			Line:    lineNumber,
			Message: "description overrides an earlier description marker",
		})
	}
	s.description = value
	s.hasDesc = true
}

// appendContent adds a content line to the open cell. Lines seen before any
// marker have no cell to go to and are dropped.
func (s *scanState) appendContent(line string, lineNumber int) bool {
	if s.current == nil {
		if strings.TrimSpace(line) != "" {
			s.warnings = append(s.warnings, Warning{
				Line:    lineNumber,
				Message: "content before the first cell marker is discarded",
			})
		}
		return false
	}

	switch s.current.Kind {
	case KindMarkdown:
		s.current.Content = append(s.current.Content, stripMarkdownPrefix(line))
	default:
		s.current.Content = append(s.current.Content, line)
	}
	return true
}

// document finalizes the scan and returns the result
func (s *scanState) document() Document {
	s.finalize()
	return Document{
		Description:    s.description,
		HasDescription: s.hasDesc,
		Cells:          s.cells,
		Warnings:       s.warnings,
	}
}
