package handler

import (
	"context"
	"net/http"

	"github.com/lordsmint/portal-api/internal/domain"
	"go.uber.org/zap"
)

type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardDTO, error)
}

// DashboardHandler serves the portal landing page summary
type DashboardHandler struct {
	dashboardService DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Order counts, recent orders, outstanding balance and the last payment.
// @Description Parts that could not be loaded are listed in partialFailures.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "dashboard")
		return
	}
	if len(summary.PartialFailures) > 0 {
		h.logger.Warn("dashboard served with partial data",
			zap.String("customer", summary.Customer),
			zap.Strings("failed", summary.PartialFailures))
	}
	respondJSON(w, http.StatusOK, summary)
}
