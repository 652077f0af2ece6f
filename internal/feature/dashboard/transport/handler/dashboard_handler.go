// Package handler serves the readiness dashboard.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"prep_tracker/internal/api"
	"prep_tracker/internal/feature/dashboard/domain/analytics"
	jwtmw "prep_tracker/internal/platform/jwt"
)

// DashboardUsecase computes a user's dashboard.
type DashboardUsecase interface {
	Stats(ctx context.Context, ownerID uint) (analytics.Stats, error)
}

// DashboardHandler handles GET /api/dashboard.
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get returns the caller's dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgUnauthorized})
		return
	}
	stats, err := h.uc.Stats(c.Request.Context(), userID)
	if err != nil {
		slog.Error("dashboard failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternal})
		return
	}
	c.JSON(http.StatusOK, stats)
}
