package handler

import (
	"fmt"
	"net/http"

	"faculty_api/internal/app/service"
	"faculty_api/internal/common"

	"github.com/go-chi/chi/v5"
)

// AuthHandler serves the public credential endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users", h.createUser)
	r.Post("/login", h.login)
}

// createUser answers with plain text, not JSON.
func (h *AuthHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.RemoteAddr = r.RemoteAddr

	userID, err := h.auth.Register(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithText(w, http.StatusOK, fmt.Sprintf("Created new user with ID %d", userID))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.RemoteAddr = r.RemoteAddr

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, token)
}
