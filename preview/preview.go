// Package preview renders a parsed script in the terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/reecepbcups/jinc/parser"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))
	codeHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))
	descriptionStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("#AAAAAA"))
)

// Options controls rendering.
type Options struct {
	Width    int
	Styled   bool   // colours and glamour auto style; plain text when false
	Language string // fence language for code cells
}

// Markdown returns the document as a single markdown string: the description,
// markdown cells verbatim and code cells as fenced blocks.
func Markdown(doc parser.Document, language string) string {
	var b strings.Builder
	if doc.Description != "" {
		b.WriteString("# Description\n\n")
		b.WriteString(doc.Description)
		b.WriteString("\n\n")
	}
	for _, cell := range doc.Cells {
		switch cell.Kind {
		case parser.KindCode:
			b.WriteString("```" + language + "\n")
			b.WriteString(cell.Text())
			b.WriteString("\n```\n\n")
		default:
			b.WriteString(cell.Text())
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Render renders each cell with a header line naming its position and kind.
func Render(doc parser.Document, opts Options) (string, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Language == "" {
		opts.Language = "python"
	}

	renderer, err := newRenderer(opts)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	var out strings.Builder
	if doc.Description != "" {
		out.WriteString(style(descriptionStyle, opts.Styled, doc.Description))
		out.WriteString("\n")
	}

	for i, cell := range doc.Cells {
		header := fmt.Sprintf("[%d] %s (line %d)", i+1, cell.Kind, cell.LineNumber)
		if cell.Kind == parser.KindCode {
			out.WriteString(style(codeHeaderStyle, opts.Styled, header))
		} else {
			out.WriteString(style(headerStyle, opts.Styled, header))
		}
		out.WriteString("\n")

		body := cell.Text()
		if cell.Kind == parser.KindCode {
			body = "```" + opts.Language + "\n" + body + "\n```"
		}
		rendered, err := renderer.Render(body)
		if err != nil {
			return "", fmt.Errorf("render cell %d: %w", i+1, err)
		}
		out.WriteString(rendered)
	}
	return out.String(), nil
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStandardStyle("notty")
	if opts.Styled {
		styleOpt = glamour.WithAutoStyle()
	}
	return glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(opts.Width))
}

func style(s lipgloss.Style, styled bool, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}
