// Package verdict produces the AI-written assessment verdict shown on
// the dashboard. It is optional by design: without an API key callers
// get ErrNotConfigured and simply skip the verdict.
package verdict

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/goliatone/greenbridge/pkg/assessment"
)

// ErrNotConfigured signals that no API key is set; the assessment
// still succeeds without a verdict.
var ErrNotConfigured = errors.New("verdict: gemini api key not configured")

// DefaultModel is the model used when the config does not name one.
const DefaultModel = "gemini-2.5-flash"

const defaultTimeout = 60 * time.Second

// Input carries everything the prompt mentions about an assessment.
type Input struct {
	Category    assessment.Category
	Score       int
	Rating      string
	Carbon      float64
	Data        map[string]string
	Suggestions []assessment.Suggestion
}

// Generator wraps the Gemini client.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithModel overrides the default model.
func WithModel(model string) GeneratorOption {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout bounds each generation call.
func WithTimeout(timeout time.Duration) GeneratorOption {
	return func(g *Generator) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// NewGenerator builds a verdict generator. An empty API key returns
// ErrNotConfigured.
func NewGenerator(ctx context.Context, apiKey string, opts ...GeneratorOption) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("verdict: create client: %w", err)
	}
	g := &Generator{
		client:  client,
		model:   DefaultModel,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate asks the model for a verdict on one assessment.
func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(userMessage(in), genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.7),
		TopP:              genai.Ptr[float32](0.9),
		MaxOutputTokens:   1000,
		SystemInstruction: genai.NewContentFromText(systemPrompt(in.Category), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("verdict: generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("verdict: model returned no text")
	}
	return text, nil
}
