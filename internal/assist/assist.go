package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"elenco/internal/models"
)

var (
	ErrUnavailable = errors.New("AI assist is not configured")
	ErrInvalidTone = errors.New("unknown tone")
)

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFun          Tone = "fun"
	ToneConcise      Tone = "concise"
)

func (t Tone) Valid() bool {
	return t == ToneProfessional || t == ToneFun || t == ToneConcise
}

// Client phrases the requests. A nil generator means no credential was
// configured and every call fails with ErrUnavailable.
type Client struct {
	gen Generator
}

func New(gen Generator) *Client {
	return &Client{gen: gen}
}

func (c *Client) Available() bool {
	return c != nil && c.gen != nil
}

// EnhanceText rewrites text in the requested tone. An empty answer leaves the
// text unchanged.
func (c *Client) EnhanceText(ctx context.Context, text string, tone Tone, lang models.Language) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}
	if !tone.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTone, tone)
	}

	out, err := c.gen.GenerateText(ctx, enhancePrompt(text, tone, lang))
	if err != nil {
		return "", fmt.Errorf("text enhancement failed: %w", err)
	}
	return orDefault(out, text), nil
}

// Translate renders text in the target language.
func (c *Client) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	out, err := c.gen.GenerateText(ctx, translatePrompt(text, target))
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	return orDefault(out, text), nil
}

// CaptionImage suggests a caption with a few hashtags, or "" when the model
// has nothing to say.
func (c *Client) CaptionImage(ctx context.Context, image []byte, mimeType string, lang models.Language) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	out, err := c.gen.GenerateFromImage(ctx, image, mimeType, captionPrompt(lang))
	if err != nil {
		return "", fmt.Errorf("image caption failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func orDefault(out, fallback string) string {
	if strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}

func enhancePrompt(text string, tone Tone, lang models.Language) string {
	if lang == models.LanguageES {
		return fmt.Sprintf("Reescribe el siguiente texto para que sea más %s. Mantén el significado pero mejora la fluidez:\n\n\"%s\"", tone, text)
	}
	return fmt.Sprintf("Rewrite the following text to be more %s. Keep the meaning the same but improve flow and engagement:\n\n\"%s\"", tone, text)
}

func translatePrompt(text string, target models.Language) string {
	name := "Spanish"
	if target == models.LanguageEN {
		name = "English"
	}
	return fmt.Sprintf("Translate the following text to %s. Only provide the translated text, no explanations:\n\n\"%s\"", name, text)
}

func captionPrompt(lang models.Language) string {
	if lang == models.LanguageES {
		return "Escribe un pie de foto breve y atractivo para esta imagen en redes sociales. Incluye 2-3 hashtags relevantes."
	}
	return "Write a short, engaging social media caption for this image. Include 2-3 relevant hashtags."
}
