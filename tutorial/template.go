package tutorial

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/reecepbcups/jinc/logger"
)

var difficulties = []string{"simple", "intermediate", "expert"}

const examplesPerDifficulty = 3

type referenceCategory struct {
	name       string
	references []string
}

var popCultureReferences = []referenceCategory{
	{"bands", []string{"The Beatles", "Queen", "Nirvana", "Guns N' Roses", "Bon Jovi"}},
	{"songs", []string{"Billie Jean", "Sweet Child O' Mine", "Smells Like Teen Spirit", "Like a Prayer", "Take On Me"}},
	{"movies", []string{"Back to the Future", "The Breakfast Club", "Jurassic Park", "Pulp Fiction", "The Matrix"}},
	{"food", []string{"Pop Rocks", "Fruit Roll-Ups", "Pizza Bagels", "Dunkaroos", "Gushers"}},
	{"tv_shows", []string{"Friends", "The Simpsons", "Seinfeld", "The X-Files", "Saved by the Bell"}},
}

// TemplateGenerator builds tutorials from fixed templates without any network access.
type TemplateGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTemplateGenerator returns a generator whose reference picks are fixed by
// seed. A zero seed uses the current time.
func NewTemplateGenerator(seed uint64) *TemplateGenerator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &TemplateGenerator{rng: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

// Generate returns a tutorial skeleton: an introduction, then for each
// difficulty a heading cell and three example/explanation cell pairs.
func (g *TemplateGenerator) Generate(ctx context.Context, topic string) (string, error) {
	topic, err := normalizeTopic(topic)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var script strings.Builder
	script.WriteString(replaceTemplateVars(headerTemplate, map[string]string{
		"TOPIC": topic,
		"TITLE": capitalize(topic),
	}))

	for _, difficulty := range difficulties {
		script.WriteString(replaceTemplateVars(sectionTemplate, map[string]string{
			"DIFFICULTY_TITLE": capitalize(difficulty),
			"DIFFICULTY":       difficulty,
			"TOPIC":            topic,
		}))

		for i := 1; i <= examplesPerDifficulty; i++ {
			script.WriteString(replaceTemplateVars(exampleTemplate, map[string]string{
				"NUMBER":  strconv.Itoa(i),
				"EXAMPLE": g.example(difficulty, topic),
			}))
		}
	}

	out := script.String()
	doc, err := checkScript(out)
	if err != nil {
		return "", err
	}
	logger.GetLogger().Debug("Generated template tutorial", "topic", topic, "cells", len(doc.Cells))
	return out, nil
}

// example describes one example, naming a random pop-culture reference
func (g *TemplateGenerator) example(difficulty, topic string) string {
	g.mu.Lock()
	category := popCultureReferences[g.rng.IntN(len(popCultureReferences))]
	reference := category.references[g.rng.IntN(len(category.references))]
	g.mu.Unlock()

	return replaceTemplateVars(exampleLineTemplate, map[string]string{
		"DIFFICULTY_TITLE": capitalize(difficulty),
		"TOPIC":            topic,
		"REFERENCE":        reference,
	})
}
