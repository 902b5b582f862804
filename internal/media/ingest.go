package media

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"elenco/internal/models"
)

// ObjectStore is the remote home for post media when one is configured.
type ObjectStore interface {
	UploadMedia(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, error)
	DeleteMedia(ctx context.Context, url string) error
	Owns(url string) bool
}

// Upload is one file taken from a request.
type Upload struct {
	Name     string
	MimeType string
	Data     []byte
}

// Ingestor turns uploads into post media. Without an object store uploads
// stay ephemeral and do not survive a restart.
type Ingestor struct {
	registry *Registry
	objects  ObjectStore
	log      *zap.Logger
}

func NewIngestor(registry *Registry, objects ObjectStore, log *zap.Logger) *Ingestor {
	return &Ingestor{registry: registry, objects: objects, log: log}
}

func (i *Ingestor) Registry() *Registry {
	return i.registry
}

// Durable reports whether attached media survives a restart.
func (i *Ingestor) Durable() bool {
	return i.objects != nil
}

// Attach stores the upload and returns the reference plus its media type.
func (i *Ingestor) Attach(ctx context.Context, file Upload) (*models.Media, models.MediaType, error) {
	mimeType := DetectMimeType(file.Data, file.MimeType)
	mediaType := MediaTypeFor(mimeType)
	if mediaType == models.MediaNone {
		return nil, models.MediaNone, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
	}

	if i.objects == nil {
		return i.registry.Put(file.Data, mimeType), mediaType, nil
	}

	url, err := i.objects.UploadMedia(ctx, file.Name, bytes.NewReader(file.Data), int64(len(file.Data)), mimeType)
	if err != nil {
		return nil, models.MediaNone, fmt.Errorf("failed to upload media: %w", err)
	}

	return &models.Media{Kind: models.MediaRemote, URL: url, MimeType: mimeType}, mediaType, nil
}

// Discard frees media that no post references anymore. Remote media is only
// removed when it lives in our own bucket.
func (i *Ingestor) Discard(ctx context.Context, m *models.Media) {
	if m == nil {
		return
	}

	if handle, ok := m.EphemeralHandle(); ok {
		i.registry.Release(handle)
		return
	}

	if m.Kind == models.MediaRemote && i.objects != nil && i.objects.Owns(m.URL) {
		if err := i.objects.DeleteMedia(ctx, m.URL); err != nil {
			i.log.Warn("failed to delete media object", zap.String("url", m.URL), zap.Error(err))
		}
	}
}
