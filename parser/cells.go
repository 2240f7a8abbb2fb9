package parser

import (
	"strings"

	"github.com/reecepbcups/jinc/logger"
)

// ParseCells scans a tagged script into a Document.
//
// Lines are matched top to bottom against the description, markdown and code
// markers. A cell marker closes the open cell and opens a new one; any other
// line is content for the open cell. End of input closes the last cell.
// ParseCells never fails: malformed input yields fewer cells, not an error.
func ParseCells(script string) Document {
	return ParseCellsWithFileName(script, "")
}

// ParseCellsWithFileName is ParseCells with the source name attached to debug logs.
func ParseCellsWithFileName(script string, fileName string) Document {
	log := logger.GetLogger()
	state := newScanState()

	for idx, line := range splitIntoLines(script) {
		lineNumber := idx + 1 // 1-based index for line numbers

		switch classifyLine(line) {
		case lineDescription:
			state.setDescription(strings.TrimSpace(line[len(MarkerDescription):]), lineNumber)
		case lineMarkdown:
			state.open(KindMarkdown, lineNumber)
		case lineCode:
			state.open(KindCode, lineNumber)
		default:
			if !state.appendContent(line, lineNumber) {
				log.Debug("Discarding line outside of any cell", "file", fileName, "line_number", lineNumber)
			}
		}
	}

	doc := state.document()
	log.Debug("Parsed tagged script", "file", fileName, "cells", len(doc.Cells), "warnings", len(doc.Warnings))
	return doc
}

// Script re-serializes the document in the tagged format.
//
// Code cells survive a ParseCells round trip unchanged. Markdown cells do not
// in general: the leading '#'/space strip applied on parse cannot be undone.
func (d Document) Script() string {
	var script strings.Builder
	if d.HasDescription || d.Description != "" {
		script.WriteString(MarkerDescription + " " + d.Description + "\n")
	}
	for _, cell := range d.Cells {
		script.WriteString(markerFor(cell.Kind))
		script.WriteString("\n")
		for _, line := range cell.Content {
			script.WriteString(line)
			script.WriteString("\n")
		}
	}
	return script.String()
}

// CountByKind returns how many cells of each kind the document holds.
func (d Document) CountByKind() map[CellKind]int {
	counts := map[CellKind]int{KindMarkdown: 0, KindCode: 0}
	for _, cell := range d.Cells {
		counts[cell.Kind]++
	}
	return counts
}
