package models

import "strings"

type MediaKind string

const (
	// MediaEphemeral references bytes held by the running process only.
	MediaEphemeral MediaKind = "ephemeral"
	// MediaDurable is a self-contained data URI.
	MediaDurable MediaKind = "durable"
	// MediaRemote is an absolute URL served by someone else.
	MediaRemote MediaKind = "remote"
)

const EphemeralScheme = "ephemeral:"

type Media struct {
	Kind     MediaKind `json:"kind"`
	URL      string    `json:"url"`
	MimeType string    `json:"mimeType,omitempty"`
}

// Persistable reports whether the reference still resolves after a restart.
func (m *Media) Persistable() bool {
	return m != nil && m.Kind != MediaEphemeral
}

// EphemeralHandle returns the registry handle of an ephemeral reference.
func (m *Media) EphemeralHandle() (string, bool) {
	if m == nil || m.Kind != MediaEphemeral {
		return "", false
	}
	return strings.TrimPrefix(m.URL, EphemeralScheme), strings.HasPrefix(m.URL, EphemeralScheme)
}

// ClassifyMediaURL derives the variant of a stored media URL. Browser object
// URLs ("blob:") from older records are treated as ephemeral.
func ClassifyMediaURL(url string) MediaKind {
	switch {
	case strings.HasPrefix(url, EphemeralScheme), strings.HasPrefix(url, "blob:"):
		return MediaEphemeral
	case strings.HasPrefix(url, "data:"):
		return MediaDurable
	default:
		return MediaRemote
	}
}
