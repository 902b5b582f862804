package handlers

import (
	"net/http"

	"elenco/internal/i18n"
	"elenco/internal/models"
)

type HealthResponse struct {
	Status       string `json:"status"`
	Loaded       bool   `json:"loaded"`
	Store        string `json:"store"`
	PersistError string `json:"persistError,omitempty"`
}

// HealthHandler reports "degraded" while the store is unreachable or the
// last write failed. The session keeps serving either way.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Loaded: h.FeedService.Loaded(),
		Store:  "ok",
	}

	if err := h.FeedService.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Store = err.Error()
	}
	if err := h.FeedService.PersistError(); err != nil {
		resp.Status = "degraded"
		resp.PersistError = err.Error()
	}

	status := http.StatusOK
	if !resp.Loaded {
		resp.Status = "loading"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, resp, status)
}

type AssistStatus struct {
	Available bool   `json:"available"`
	Banner    string `json:"banner,omitempty"`
}

type StateResponse struct {
	Posts        []models.Post       `json:"posts"`
	User         models.User         `json:"user"`
	Settings     models.AppSettings  `json:"settings"`
	Language     models.Language     `json:"language"`
	Assist       AssistStatus        `json:"assist"`
	MediaDurable bool                `json:"mediaDurable"`
	Messages     map[i18n.Key]string `json:"messages"`
}

func (h *Handlers) GetState(w http.ResponseWriter, r *http.Request) {
	state := h.FeedService.Snapshot()

	assist := AssistStatus{Available: h.AssistService.Available()}
	if !assist.Available {
		assist.Banner = i18n.T(state.Language, i18n.MissingKey)
	}

	writeJSON(w, StateResponse{
		Posts:        presentPosts(state.Posts),
		User:         presentUser(state.User),
		Settings:     state.Settings,
		Language:     state.Language,
		Assist:       assist,
		MediaDurable: h.MediaService.Durable(),
		Messages:     i18n.Messages(state.Language),
	}, http.StatusOK)
}
