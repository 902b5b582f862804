package assist

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"elenco/internal/config"
)

// Generator produces text from a prompt, optionally grounded on an image.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateFromImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

type Gemini struct {
	client *genai.Client
	model  string
}

var _ Generator = (*Gemini)(nil)

func NewGemini(ctx context.Context, cfg config.Assist) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: cfg.Model}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, genai.Text(prompt))
}

func (g *Gemini) GenerateFromImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}
	return g.generate(ctx, contents)
}

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}

	// Text joins every text part of the first candidate.
	return result.Text(), nil
}
