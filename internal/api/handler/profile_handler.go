package handler

import (
	"net/http"
	"strconv"

	"faculty_api/internal/api/middleware"
	"faculty_api/internal/app/service"
	"faculty_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	authService *service.AuthService
	tokens      middleware.TokenVerifier
}

func NewProfileHandler(authService *service.AuthService, tokens middleware.TokenVerifier) *ProfileHandler {
	return &ProfileHandler{authService: authService, tokens: tokens}
}

func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator(h.tokens)) // All profile routes require auth
	r.Get("/", h.getProfile)
	r.Get("/events", h.listEvents)
}

func (h *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, r, common.ErrMissingToken)
		return
	}

	user, err := h.authService.Profile(r.Context(), id.Username)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, r, common.ErrMissingToken)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			common.RespondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	events, err := h.authService.Events(r.Context(), id.Username, limit)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, events)
}
