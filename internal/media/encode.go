package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"elenco/internal/models"
)

// DefaultEncodeLimit is the ceiling for images inlined into profile records.
const DefaultEncodeLimit int64 = 3 * 1024 * 1024

var (
	ErrTooLarge         = errors.New("file too large")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// TooLargeError formats the limit for people.
func TooLargeError(limit int64) error {
	return fmt.Errorf("%w: limit is %s", ErrTooLarge, humanize.IBytes(uint64(limit)))
}

// ReadLimited reads the whole source, failing once it exceeds limit bytes.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, TooLargeError(limit)
	}
	return data, nil
}

// DetectMimeType keeps a specific declared type and sniffs the content
// otherwise.
func DetectMimeType(data []byte, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

// EncodeDataURI produces a self-contained reference that survives restarts.
// Oversized sources are rejected before anything else happens.
func EncodeDataURI(r io.Reader, declared string, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultEncodeLimit
	}

	data, err := ReadLimited(r, limit)
	if err != nil {
		return "", err
	}

	mimeType := DetectMimeType(data, declared)
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// MediaTypeFor maps a MIME type onto the post media kinds.
func MediaTypeFor(mimeType string) models.MediaType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.MediaImage
	case strings.HasPrefix(mimeType, "video/"):
		return models.MediaVideo
	default:
		return models.MediaNone
	}
}
