package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"elenco/internal/share"
)

// currentURL is the address the client is on, as reported by ?url=. The
// configured app URL stands in when the client sends none.
func (h *Handlers) currentURL(r *http.Request) string {
	if u := r.URL.Query().Get("url"); u != "" {
		return u
	}
	return h.Cfg.AppURL
}

func nativeShare(r *http.Request) bool {
	native, err := strconv.ParseBool(r.URL.Query().Get("native"))
	return err == nil && native
}

func (h *Handlers) SharePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.FeedService.Post(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	settings := h.FeedService.Snapshot().Settings
	plan := share.ForPost(post, settings, h.currentURL(r), h.requestLanguage(r), nativeShare(r))
	writeJSON(w, plan, http.StatusOK)
}

func (h *Handlers) ShareApp(w http.ResponseWriter, r *http.Request) {
	settings := h.FeedService.Snapshot().Settings
	plan := share.ForApp(settings, h.currentURL(r), h.requestLanguage(r), nativeShare(r))
	writeJSON(w, plan, http.StatusOK)
}
