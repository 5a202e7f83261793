package api

import (
	"net/http"

	"go.uber.org/zap"

	serr "github.com/IvanChernomyrdin/go-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-accounts/internal/shared/models"
)

// Health проверяет доступность хранилища.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Failure      503 {object} models.ErrorResponse "Storage unavailable"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		WriteError(w, http.StatusServiceUnavailable, serr.ErrUnavailable)
		return
	}
	WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
