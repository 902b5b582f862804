package media

import (
	"sync"

	"github.com/google/uuid"

	"elenco/internal/models"
)

// Blob is an uploaded file held in process memory.
type Blob struct {
	Data     []byte
	MimeType string
}

// Registry keeps ephemeral uploads addressable by handle until the process
// exits. Nothing here is ever written to the store.
type Registry struct {
	mu    sync.RWMutex
	blobs map[string]Blob
	newID func() string
}

func NewRegistry() *Registry {
	return &Registry{
		blobs: make(map[string]Blob),
		newID: uuid.NewString,
	}
}

// Put stores the bytes and returns an ephemeral reference to them.
func (r *Registry) Put(data []byte, mimeType string) *models.Media {
	handle := r.newID()

	r.mu.Lock()
	r.blobs[handle] = Blob{Data: data, MimeType: mimeType}
	r.mu.Unlock()

	return &models.Media{
		Kind:     models.MediaEphemeral,
		URL:      models.EphemeralScheme + handle,
		MimeType: mimeType,
	}
}

func (r *Registry) Get(handle string) (Blob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.blobs[handle]
	return b, ok
}

func (r *Registry) Release(handle string) {
	r.mu.Lock()
	delete(r.blobs, handle)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}
