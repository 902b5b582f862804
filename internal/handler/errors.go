package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"elenco/internal/assist"
	"elenco/internal/media"
	"elenco/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyPost),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidReaction),
		errors.Is(err, service.ErrInvalidLanguage),
		errors.Is(err, service.ErrNoImage),
		errors.Is(err, media.ErrUnsupportedMedia),
		errors.Is(err, assist.ErrInvalidTone):
		return http.StatusBadRequest
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAuthDisabled):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotLoaded), errors.Is(err, assist.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, assist.ErrCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	WriteError(w, err.Error(), statusFor(err))
}
