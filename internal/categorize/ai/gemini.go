package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a classifier backed by the Gemini API. baseURL overrides
// the endpoint and is meant for tests.
func NewGemini(ctx context.Context, apiKey, baseURL, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Classify(ctx context.Context, merchant string, categories []string) (string, error) {
	var temperature float32

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(merchant, categories)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	return answer, nil
}
