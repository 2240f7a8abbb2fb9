package tutorial

import (
	"fmt"
	"regexp"
	"strings"
)

// Templates for the tagged tutorial script
const (
	headerTemplate = `#!/usr/bin/env python3
#  DESCRIPTION This is a tutorial on {{TOPIC}}, featuring examples inspired by 80s and 90s pop culture.

# MARKDOWN CELL
# {{TITLE}} Tutorial

This tutorial will guide you through {{TOPIC}} with examples inspired by 80s and 90s pop culture.

`

	sectionTemplate = `# MARKDOWN CELL
## {{DIFFICULTY_TITLE}} Examples

Here are three {{DIFFICULTY}} examples of {{TOPIC}}:

`

	exampleTemplate = `# CODE CELL
# Example {{NUMBER}}: {{EXAMPLE}}
# Your code here

# MARKDOWN CELL
Explanation of the above example goes here.

`

	exampleLineTemplate = `{{DIFFICULTY_TITLE}} example for {{TOPIC}} using {{REFERENCE}}`
)

// genaiSystemPrompt instructs the model to answer in the tagged format
const genaiSystemPrompt = `You write Python tutorials as a single plain-text Python script in the jinc format.
Rules:
- The first line is "#  DESCRIPTION " (hash, two spaces, DESCRIPTION, space) followed by a one-sentence summary.
- Start every markdown cell with a line that is exactly "# MARKDOWN CELL". Markdown lines may start with "# ".
- Start every code cell with a line that is exactly "# CODE CELL", followed by runnable Python.
- Do not put any text before the first cell marker except the description line.
- Do not wrap the answer in a code fence.`

const genaiUserTemplate = `Write a tutorial on {{TOPIC}}.
Give a short introduction, then simple, intermediate and expert sections.
Each section has three examples: a code cell followed by a markdown cell explaining it.`

var placeholderPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)

// replaceTemplateVars fills every {{VAR}} in template. A placeholder without
// a value is a programming error and panics. Values are inserted in one pass,
// so text inside a value is never treated as a placeholder.
func replaceTemplateVars(template string, vars map[string]string) string {
	missing := findUnreplacedVars(template, vars)
	if len(missing) > 0 {
		panic(fmt.Sprintf("Unreplaced template variables found: %v.\nTemplate:\n%v\n", missing, template))
	}

	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// findUnreplacedVars lists placeholders in text that vars has no value for
func findUnreplacedVars(text string, vars map[string]string) []string {
	var unreplaced []string
	seen := make(map[string]bool)

	for _, match := range placeholderPattern.FindAllString(text, -1) {
		key := strings.TrimSuffix(strings.TrimPrefix(match, "{{"), "}}")
		if _, ok := vars[key]; ok || seen[match] {
			continue
		}
		unreplaced = append(unreplaced, match)
		seen[match] = true
	}
	return unreplaced
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
