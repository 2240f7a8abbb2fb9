package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/reecepbcups/jinc/logger"
)

type codeCellJSON struct {
	CellType       CellType       `json:"cell_type"`
	ExecutionCount *int           `json:"execution_count"`
	ID             string         `json:"id"`
	Metadata       map[string]any `json:"metadata"`
	Outputs        []any          `json:"outputs"`
	Source         []string       `json:"source"`
}

type markdownCellJSON struct {
	CellType CellType       `json:"cell_type"`
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata"`
	Source   []string       `json:"source"`
}

type notebookJSON struct {
	Cells         []any    `json:"cells"`
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
}

// MarshalJSON writes the cell with the keys nbformat expects for its type.
func (c *Cell) MarshalJSON() ([]byte, error) {
	metadata := c.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	switch c.Type {
	case CellCode:
		return encodeJSON(codeCellJSON{
			CellType: c.Type,
			ID:       c.ID,
			Metadata: metadata,
			Outputs:  []any{},
			Source:   splitSource(c.Source),
		})
	case CellMarkdown:
		return encodeJSON(markdownCellJSON{
			CellType: c.Type,
			ID:       c.ID,
			Metadata: metadata,
			Source:   splitSource(c.Source),
		})
	default:
		return nil, fmt.Errorf("unsupported cell type %q", c.Type)
	}
}

// encodeJSON is json.Marshal without HTML escaping. The outer encoder's
// SetEscapeHTML does not reach output returned by a Marshaler.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Marshal encodes the notebook the way nbformat writes it: one-space indent,
// sorted keys, unescaped HTML characters and a trailing newline.
func Marshal(nb *Notebook) ([]byte, error) {
	cells := make([]any, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		cells = append(cells, cell)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(notebookJSON{
		Cells:         cells,
		Metadata:      nb.Metadata,
		NBFormat:      nb.NBFormat,
		NBFormatMinor: nb.NBFormatMinor,
	}); err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}
	return buf.Bytes(), nil
}

// Write writes the notebook to path, replacing any existing file.
// Call Validate first to check it against the nbformat schema.
func Write(nb *Notebook, path string) error {
	data, err := Marshal(nb)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	logger.GetLogger().Debug("Wrote notebook", "path", path, "cells", len(nb.Cells), "bytes", len(data))
	return nil
}
