package parser

import "strings"

const (
	MarkerDescription = "#  DESCRIPTION"
	MarkerMarkdown    = "# MARKDOWN CELL"
	MarkerCode        = "# CODE CELL"
)

// MarkerInfo holds information about a structural marker line
type MarkerInfo struct {
	Name        string
	Prefix      string
	Description string
	Example     string
}

type lineKind int

const (
	lineContent lineKind = iota
	lineDescription
	lineMarkdown
	lineCode
)

// markerDefinitions is the single source of truth for marker lines, in match order.
var markerDefinitions = []struct {
	MarkerInfo
	kind lineKind
}{
	{
		MarkerInfo: MarkerInfo{
			Name:        "description",
			Prefix:      MarkerDescription,
			Description: "Set the notebook description (two spaces after '#'; the last one wins)",
			Example:     MarkerDescription + " A short tour of list comprehensions",
		},
		kind: lineDescription,
	},
	{
		MarkerInfo: MarkerInfo{
			Name:        "markdown",
			Prefix:      MarkerMarkdown,
			Description: "Start a markdown cell; leading '#' and spaces are stripped from its lines",
			Example:     MarkerMarkdown,
		},
		kind: lineMarkdown,
	},
	{
		MarkerInfo: MarkerInfo{
			Name:        "code",
			Prefix:      MarkerCode,
			Description: "Start a code cell; its lines are kept verbatim",
			Example:     MarkerCode,
		},
		kind: lineCode,
	},
}

// GetAllMarkersInfo returns every marker in the order lines are matched against them.
func GetAllMarkersInfo() []MarkerInfo {
	infos := make([]MarkerInfo, 0, len(markerDefinitions))
	for _, def := range markerDefinitions {
		infos = append(infos, def.MarkerInfo)
	}
	return infos
}

// classifyLine returns the kind of the first marker whose prefix the line starts with.
func classifyLine(line string) lineKind {
	for _, def := range markerDefinitions {
		if strings.HasPrefix(line, def.Prefix) {
			return def.kind
		}
	}
	return lineContent
}

// markerFor returns the opening marker line for a cell kind.
func markerFor(kind CellKind) string {
	if kind == KindCode {
		return MarkerCode
	}
	return MarkerMarkdown
}
