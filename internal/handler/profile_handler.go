package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"elenco/internal/i18n"
	"elenco/internal/media"
	"elenco/internal/models"
)

type ProfileRequest struct {
	Name            string `json:"name" validate:"required"`
	Avatar          string `json:"avatar" validate:"omitempty,url|datauri"`
	CoverPhoto      string `json:"coverPhoto" validate:"omitempty,url|datauri"`
	BackgroundImage string `json:"backgroundImage" validate:"omitempty,url|datauri"`
	PublicURL       string `json:"publicUrl" validate:"omitempty,url"`
}

type ProfileResponse struct {
	User     models.User        `json:"user"`
	Settings models.AppSettings `json:"settings"`
	Posts    []models.Post      `json:"posts"`
}

type CoverRequest struct {
	URL string `json:"url" validate:"required,url|datauri"`
}

type EncodedImageResponse struct {
	DataURI string `json:"dataUri"`
}

type LanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en es"`
}

type LanguageResponse struct {
	Language models.Language     `json:"language"`
	Messages map[i18n.Key]string `json:"messages"`
}

func (h *Handlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "name is required and images must be URLs or data URIs", http.StatusBadRequest)
		return
	}

	user := models.User{
		Name:       req.Name,
		Avatar:     req.Avatar,
		CoverPhoto: req.CoverPhoto,
	}
	settings := models.AppSettings{
		BackgroundImage: req.BackgroundImage,
		PublicURL:       strings.TrimSpace(req.PublicURL),
	}

	state, err := h.FeedService.SaveProfile(r.Context(), user, settings)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, ProfileResponse{
		User:     presentUser(state.User),
		Settings: state.Settings,
		Posts:    presentPosts(state.Posts),
	}, http.StatusOK)
}

func (h *Handlers) SetCover(w http.ResponseWriter, r *http.Request) {
	var req CoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "url must be a URL or data URI", http.StatusBadRequest)
		return
	}

	user, err := h.FeedService.SetCover(r.Context(), req.URL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, presentUser(user), http.StatusOK)
}

// EncodeProfileImage turns an upload into a data URI the client can put in
// the avatar, cover or background field.
func (h *Handlers) EncodeProfileImage(w http.ResponseWriter, r *http.Request) {
	limit := h.Cfg.MaxEncodeSize
	lang := h.requestLanguage(r)

	r.Body = http.MaxBytesReader(w, r.Body, limit+1024*1024)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, i18n.T(lang, i18n.TooLarge), http.StatusRequestEntityTooLarge)
		} else {
			WriteError(w, "invalid multipart form", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	uri, err := media.EncodeDataURI(file, header.Header.Get("Content-Type"), limit)
	if errors.Is(err, media.ErrTooLarge) {
		WriteError(w, i18n.T(lang, i18n.TooLarge), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, EncodedImageResponse{DataURI: uri}, http.StatusOK)
}

func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req LanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "language must be en or es", http.StatusBadRequest)
		return
	}

	lang := models.Language(req.Language)
	if err := h.FeedService.SetLanguage(r.Context(), lang); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, LanguageResponse{Language: lang, Messages: i18n.Messages(lang)}, http.StatusOK)
}

func (h *Handlers) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.FeedService.ToggleLanguage(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, LanguageResponse{Language: lang, Messages: i18n.Messages(lang)}, http.StatusOK)
}
