// Package tutorial produces tutorial scripts in the tagged cell format.
package tutorial

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reecepbcups/jinc/config"
	"github.com/reecepbcups/jinc/parser"
)

var (
	ErrEmptyTutorial = errors.New("generated tutorial contains no cells")
	ErrMissingAPIKey = errors.New("API key is required")
	ErrMissingTopic  = errors.New("topic is required")
)

// Generator produces a tagged script for a topic.
type Generator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// New returns the generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.GenerateConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderTemplate, "":
		return NewTemplateGenerator(cfg.Seed), nil
	case config.ProviderGenAI:
		return NewGenAIGenerator(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown tutorial provider %q", cfg.Provider)
	}
}

// checkScript rejects generated text the converter would turn into an empty notebook.
func checkScript(script string) (parser.Document, error) {
	doc := parser.ParseCells(script)
	if len(doc.Cells) == 0 {
		return doc, ErrEmptyTutorial
	}
	return doc, nil
}

// stripCodeFence removes a surrounding ``` fence that models like to add.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n") + "\n"
}

func normalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrMissingTopic
	}
	return topic, nil
}
