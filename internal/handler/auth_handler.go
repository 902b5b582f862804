package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "password is required", http.StatusBadRequest)
		return
	}

	token, expires, err := h.AuthService.Login(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, AuthResponse{
		AccessToken: token,
		ExpiresAt:   expires.UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
