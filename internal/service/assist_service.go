package service

import (
	"context"

	"elenco/internal/assist"
	"elenco/internal/models"
)

type assistService struct {
	client  *assist.Client
	tracker *assist.Tracker
}

func NewAssistService(client *assist.Client, tracker *assist.Tracker) AssistService {
	return &assistService{client: client, tracker: tracker}
}

func (a *assistService) Available() bool {
	return a.client.Available()
}

func (a *assistService) Enhance(ctx context.Context, scope, text string, tone assist.Tone, lang models.Language) (string, error) {
	if !a.Available() {
		return "", assist.ErrUnavailable
	}
	return a.tracker.Run(ctx, scope, func(ctx context.Context) (string, error) {
		return a.client.EnhanceText(ctx, text, tone, lang)
	})
}

func (a *assistService) Translate(ctx context.Context, scope, text string, target models.Language) (string, error) {
	if !a.Available() {
		return "", assist.ErrUnavailable
	}
	return a.tracker.Run(ctx, scope, func(ctx context.Context) (string, error) {
		return a.client.Translate(ctx, text, target)
	})
}

func (a *assistService) Caption(ctx context.Context, scope string, image []byte, mimeType string, lang models.Language) (string, error) {
	if !a.Available() {
		return "", assist.ErrUnavailable
	}
	return a.tracker.Run(ctx, scope, func(ctx context.Context) (string, error) {
		return a.client.CaptionImage(ctx, image, mimeType, lang)
	})
}

func (a *assistService) CancelScope(scope string) int {
	return a.tracker.CancelScope(scope)
}
