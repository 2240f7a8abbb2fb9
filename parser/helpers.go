package parser

import "strings"

// splitIntoLines splits on '\n'. The empty segment after a final newline is
// not a line, and a trailing '\r' is dropped so CRLF input scans like LF.
func splitIntoLines(script string) []string {
	if script == "" {
		return nil
	}
	lines := strings.Split(script, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// stripMarkdownPrefix removes every leading '#' and space from a markdown
// content line. It strips a character class, not a fixed prefix: "###"
// becomes "" and "#  # x" becomes "x".
func stripMarkdownPrefix(line string) string {
	return strings.TrimLeft(line, "# ")
}
