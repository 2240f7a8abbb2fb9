package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/reecepbcups/jinc/config"
	"github.com/reecepbcups/jinc/logger"
	"github.com/reecepbcups/jinc/notebook"
	"github.com/reecepbcups/jinc/parser"
)

var (
	ErrInputNotFound      = errors.New("input file not found")
	ErrInputReadFailure   = errors.New("input file could not be read")
	ErrOutputWriteFailure = errors.New("output file could not be written")
)

// descriptionHeader precedes the description in the synthesized first cell
const descriptionHeader = "# Description\n\n"

// ConvertOpts controls a conversion
type ConvertOpts struct {
	Output   string // defaults to DefaultOutputPath(input)
	Notebook config.NotebookConfig
}

// ConvertResult describes one converted file
type ConvertResult struct {
	Input    string
	Output   string
	Cells    int
	Warnings []parser.Warning
	Written  bool
}

// DefaultOutputPath returns the input's base name with its extension replaced
// by .ipynb. The directory is dropped, so the notebook lands in the working directory.
func DefaultOutputPath(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + notebook.Extension
}

// BuildNotebook turns a parsed document into a notebook. A description
// becomes a leading markdown cell ahead of the parsed cells.
func BuildNotebook(doc parser.Document, opts config.NotebookConfig, sourceName string) *notebook.Notebook {
	nb := notebook.NewNotebook()

	if doc.Description != "" {
		nb.Append(notebook.NewMarkdownCell(descriptionHeader + doc.Description))
	}

	var markdownSources []string
	for _, cell := range doc.Cells {
		switch cell.Kind {
		case parser.KindMarkdown:
			nb.Append(notebook.NewMarkdownCell(cell.Text()))
			markdownSources = append(markdownSources, cell.Text())
		case parser.KindCode:
			nb.Append(notebook.NewCodeCell(cell.Text()))
		}
	}

	if opts.TitleFromHeading {
		title := notebook.ExtractTitle(markdownSources...)
		if title == "" && sourceName != "" {
			title = titleFromFilename(sourceName)
		}
		nb.Metadata.Title = title
	}
	if opts.Kernel.Name != "" {
		nb.Metadata.Kernelspec = &notebook.Kernelspec{
			Name:        opts.Kernel.Name,
			DisplayName: opts.Kernel.DisplayName,
			Language:    opts.Kernel.Language,
		}
	}
	return nb
}

// titleFromFilename turns "list_comprehensions.py" into "List Comprehensions"
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ReadScript reads a tagged script, separating a missing file from other read errors.
func ReadScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: the file '%s' was not found", ErrInputNotFound, path)
		}
		return "", fmt.Errorf("%w: there was an issue reading the file '%s': %v", ErrInputReadFailure, path, err)
	}
	return string(data), nil
}

// ConvertFile runs the full workflow for one file: read -> parse -> build -> write.
func ConvertFile(input string, opts ConvertOpts) (ConvertResult, error) {
	log := logger.GetLogger()

	output := opts.Output
	if output == "" {
		output = DefaultOutputPath(input)
	}
	result := ConvertResult{Input: input, Output: output}

	log.Debug("Reading file", "path", input)
	script, err := ReadScript(input)
	if err != nil {
		return result, err
	}

	doc := parser.ParseCellsWithFileName(script, filepath.Base(input))
	result.Warnings = doc.Warnings
	for _, w := range doc.Warnings {
		log.Debug("Scanner warning", "file", input, "line", w.Line, "message", w.Message)
	}

	nb := BuildNotebook(doc, opts.Notebook, input)
	result.Cells = len(nb.Cells)

	if opts.Notebook.ValidateSchema {
		if err := notebook.Validate(nb); err != nil {
			return result, fmt.Errorf("%w: '%s': %v", ErrOutputWriteFailure, output, err)
		}
	}

	log.Debug("Writing notebook", "path", output, "cells", result.Cells)
	if err := notebook.Write(nb, output); err != nil {
		return result, fmt.Errorf("%w: there was an issue writing to the file '%s': %v", ErrOutputWriteFailure, output, err)
	}
	result.Written = true
	return result, nil
}

// ConvertFiles converts independent inputs concurrently, each to its default
// output path. Results keep the order of inputs; the first error cancels
// conversions that have not started yet.
func ConvertFiles(ctx context.Context, inputs []string, opts ConvertOpts) ([]ConvertResult, error) {
	if err := checkOutputClashes(inputs); err != nil {
		return nil, err
	}
	results := make([]ConvertResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileOpts := opts
			fileOpts.Output = ""
			result, err := ConvertFile(input, fileOpts)
			results[i] = result
			return err
		})
	}

	err := g.Wait()
	return results, err
}

// checkOutputClashes fails when two inputs share a default output path,
// since both would be written to the same notebook at once.
func checkOutputClashes(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		output := DefaultOutputPath(input)
		if first, ok := seen[output]; ok {
			return fmt.Errorf("%w: '%s' and '%s' would both be written to '%s'", ErrOutputWriteFailure, first, input, output)
		}
		seen[output] = input
	}
	return nil
}

// parseFileList parses comma separated file paths
func parseFileList(input string) []string {
	if !strings.Contains(input, ",") {
		return []string{strings.TrimSpace(input)}
	}

	var result []string
	for _, file := range strings.Split(input, ",") {
		trimmed := strings.TrimSpace(file)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
