package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"elenco/internal/feed"
	"elenco/internal/media"
	"elenco/internal/models"
	"elenco/internal/service"
)

type PostsResponse struct {
	Tab   feed.Tab      `json:"tab"`
	Posts []models.Post `json:"posts"`
}

type ReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like love haha wow sad angry"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	tab := feed.ParseTab(r.URL.Query().Get("tab"))

	writeJSON(w, PostsResponse{
		Tab:   tab,
		Posts: presentPosts(h.FeedService.Posts(tab)),
	}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.FeedService.Post(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, presentPost(post), http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := h.FeedService.CreatePost(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, presentPost(post), http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := h.FeedService.UpdatePost(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, presentPost(post), http.StatusOK)
}

// parsePostForm reads title, content, mediaType and an optional file from a
// multipart form.
func (h *Handlers) parsePostForm(w http.ResponseWriter, r *http.Request) (service.PostInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1024*1024)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, media.TooLargeError(h.Cfg.MaxUploadSize).Error(), http.StatusRequestEntityTooLarge)
		} else {
			WriteError(w, "invalid multipart form", http.StatusBadRequest)
		}
		return service.PostInput{}, false
	}

	in := service.PostInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	if mt := r.FormValue("mediaType"); mt != "" {
		in.MediaType = models.MediaType(mt)
		if !in.MediaType.Valid() {
			WriteError(w, "mediaType must be image, video or none", http.StatusBadRequest)
			return service.PostInput{}, false
		}
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return in, true
	}
	if err != nil {
		WriteError(w, "failed to read file", http.StatusBadRequest)
		return service.PostInput{}, false
	}
	defer file.Close()

	data, err := media.ReadLimited(file, h.Cfg.MaxUploadSize)
	if err != nil {
		writeServiceError(w, err)
		return service.PostInput{}, false
	}

	in.File = &media.Upload{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}
	return in, true
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.FeedService.DeletePost(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) React(w http.ResponseWriter, r *http.Request) {
	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "type must be one of like, love, haha, wow, sad, angry", http.StatusBadRequest)
		return
	}

	post, err := h.FeedService.React(r.Context(), mux.Vars(r)["id"], models.ReactionType(req.Type))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, presentPost(post), http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Blank check only, the text is stored as typed.
	trimmed := req
	trimmed.Text = strings.TrimSpace(req.Text)
	if err := h.Validate.Struct(trimmed); err != nil {
		WriteError(w, service.ErrEmptyComment.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.FeedService.AddComment(r.Context(), mux.Vars(r)["id"], req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, comment, http.StatusCreated)
}

func (h *Handlers) SetCoverFromPost(w http.ResponseWriter, r *http.Request) {
	user, err := h.FeedService.SetCoverFromPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, presentUser(user), http.StatusOK)
}
