package tutorial

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/reecepbcups/jinc/logger"
)

// contentGenerator is the part of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIGenerator asks a Gemini model to write the tutorial.
// It makes a single request; failures are returned to the caller as-is.
type GenAIGenerator struct {
	models contentGenerator
	model  string
}

// NewGenAIGenerator creates a generator backed by the Gemini API.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{models: client.Models, model: model}, nil
}

// Generate requests a tutorial for topic and checks that it has cells.
func (g *GenAIGenerator) Generate(ctx context.Context, topic string) (string, error) {
	topic, err := normalizeTopic(topic)
	if err != nil {
		return "", err
	}
	log := logger.GetLogger()

	prompt := replaceTemplateVars(genaiUserTemplate, map[string]string{"TOPIC": topic})
	log.Debug("Requesting tutorial from model", "model", g.model, "topic", topic)

	resp, err := g.models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(genaiSystemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	script := stripCodeFence(resp.Text())
	doc, err := checkScript(script)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", g.model, err)
	}
	if len(doc.Warnings) > 0 {
		log.Warn("Generated tutorial has lines outside any cell", "count", len(doc.Warnings))
	}
	return script, nil
}
