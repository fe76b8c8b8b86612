// Package llm wraps the Gemini inference service behind a small Generator
// interface so every consumer can be tested with a fake.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"

	"robot/config"
)

// ErrUnavailable reports that the inference service could not produce a
// reply. Callers branch on this value, never on error text.
var ErrUnavailable = errors.New("inference service unavailable")

// Generator produces free text from a prompt. No guarantee of well-formed
// output; callers must parse defensively.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks the model for a JSON-typed reply. The output is
	// still free text as far as the caller is concerned.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Gemini is the production Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator using the configured API key and model.
func NewGemini(ctx context.Context) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.GetGeminiAPIKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: config.GetGeminiModel()}, nil
}

// Generate produces a plain-text reply.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, nil)
}

// GenerateJSON produces a reply with the JSON response MIME type set, which
// makes the model much more likely to emit parseable output.
func (g *Gemini) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
}

func (g *Gemini) generate(ctx context.Context, prompt string, genConfig *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		genConfig)
	if err != nil {
		log.Printf("[LLM_ERROR] Failed to generate response: %v", err)
		return "", ErrUnavailable
	}

	return resp.Text(), nil
}
