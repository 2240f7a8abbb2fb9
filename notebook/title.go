package notebook

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New()

// ExtractTitle returns the first level-1 heading across the markdown sources,
// falling back to the first level-2 heading. It returns "" when there is none.
func ExtractTitle(sources ...string) string {
	var firstH2 string
	for _, src := range sources {
		h1, h2 := headings([]byte(src))
		if h1 != "" {
			return h1
		}
		if firstH2 == "" {
			firstH2 = h2
		}
	}
	return firstH2
}

// headings returns the first level-1 and level-2 heading text in content
func headings(content []byte) (h1, h2 string) {
	doc := markdownParser.Parser().Parse(text.NewReader(content))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		switch {
		case heading.Level == 1 && h1 == "":
			h1 = headingText(heading, content)
		case heading.Level == 2 && h2 == "":
			h2 = headingText(heading, content)
		}
		if h1 != "" {
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	return h1, h2
}

func headingText(n ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(content))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
