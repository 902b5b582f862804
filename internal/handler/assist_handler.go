package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"elenco/internal/assist"
	"elenco/internal/media"
	"elenco/internal/models"
)

type EnhanceRequest struct {
	Scope string `json:"scope" validate:"required"`
	Text  string `json:"text" validate:"required"`
	Tone  string `json:"tone" validate:"required,oneof=professional fun concise"`
	Lang  string `json:"lang" validate:"omitempty,oneof=en es"`
}

type TranslateRequest struct {
	Scope  string `json:"scope" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Target string `json:"target" validate:"required,oneof=en es"`
}

type AssistResponse struct {
	Text string `json:"text"`
}

type CancelResponse struct {
	Cancelled int `json:"cancelled"`
}

func (h *Handlers) Enhance(w http.ResponseWriter, r *http.Request) {
	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "scope, text and a tone of professional, fun or concise are required", http.StatusBadRequest)
		return
	}

	lang := models.Language(req.Lang)
	if lang == "" {
		lang = h.FeedService.Snapshot().Language
	}

	out, err := h.AssistService.Enhance(r.Context(), req.Scope, req.Text, assist.Tone(req.Tone), lang)
	if err != nil {
		h.writeAssistError(w, "enhance", err)
		return
	}

	writeJSON(w, AssistResponse{Text: out}, http.StatusOK)
}

func (h *Handlers) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "scope, text and a target of en or es are required", http.StatusBadRequest)
		return
	}

	out, err := h.AssistService.Translate(r.Context(), req.Scope, req.Text, models.Language(req.Target))
	if err != nil {
		h.writeAssistError(w, "translate", err)
		return
	}

	writeJSON(w, AssistResponse{Text: out}, http.StatusOK)
}

// Caption describes an uploaded image. Form fields: file, scope and an
// optional lang.
func (h *Handlers) Caption(w http.ResponseWriter, r *http.Request) {
	limit := h.Cfg.MaxUploadSize

	r.Body = http.MaxBytesReader(w, r.Body, limit+1024*1024)
	if err := r.ParseMultipartForm(limit); err != nil {
		WriteError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	scope := r.FormValue("scope")
	if scope == "" {
		WriteError(w, "scope is required", http.StatusBadRequest)
		return
	}

	lang := models.Language(r.FormValue("lang"))
	if !lang.Valid() {
		lang = h.FeedService.Snapshot().Language
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := media.ReadLimited(file, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	mimeType := media.DetectMimeType(data, header.Header.Get("Content-Type"))
	if media.MediaTypeFor(mimeType) != models.MediaImage {
		WriteError(w, media.ErrUnsupportedMedia.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.AssistService.Caption(r.Context(), scope, data, mimeType, lang)
	if err != nil {
		h.writeAssistError(w, "caption", err)
		return
	}

	writeJSON(w, AssistResponse{Text: out}, http.StatusOK)
}

// CancelScope drops every in-flight task of a view, typically when its
// editor closes.
func (h *Handlers) CancelScope(w http.ResponseWriter, r *http.Request) {
	n := h.AssistService.CancelScope(mux.Vars(r)["scope"])
	writeJSON(w, CancelResponse{Cancelled: n}, http.StatusOK)
}

// writeAssistError reports upstream failures as 502 and keeps the
// domain mapping for everything else.
func (h *Handlers) writeAssistError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		status = http.StatusBadGateway
		h.Log.Warn("assist request failed", zap.String("op", op), zap.Error(err))
	}
	WriteError(w, err.Error(), status)
}
