package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ServeEphemeral returns bytes attached during this process's lifetime.
func (h *Handlers) ServeEphemeral(w http.ResponseWriter, r *http.Request) {
	blob, ok := h.MediaService.Registry().Get(mux.Vars(r)["handle"])
	if !ok {
		WriteError(w, "media not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", blob.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	w.Write(blob.Data)
}
