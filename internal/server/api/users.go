package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-accounts/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// GetUser отдаёт пользователя по id.
//
// @Summary      Get user
// @Description  Returns a user by id. Password hash is never returned.
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID (UUID)"
// @Success      200 {object} models.UserResponse
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.Svc.Accounts.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "get user", err)
		return
	}

	WriteJSON(w, http.StatusOK, models.UserResponse{User: user.DTO()})
}

// Me отдаёт пользователя, которому выдан токен.
//
// @Summary      Current user
// @Description  Returns the user the access token was issued to.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.UserResponse
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	user, err := h.Svc.Accounts.GetByID(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "me", err)
		return
	}

	WriteJSON(w, http.StatusOK, models.UserResponse{User: user.DTO()})
}
