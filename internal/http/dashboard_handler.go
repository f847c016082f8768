package httpapi

import (
	"net/http"

	"amr-data/internal/service"

	"go.uber.org/zap"
)

// DashboardHandler the three aggregation read endpoints. Store faults
// surface as 500 with a generic message across all three views; a bad
// filter never reaches the service.
type DashboardHandler struct {
	dashboard service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.dashboard.GetSummary(r.Context(), filter)
	if err != nil {
		h.logger.Error("dashboard summary failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *DashboardHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trends, err := h.dashboard.GetTrends(r.Context(), filter)
	if err != nil {
		h.logger.Error("dashboard trends failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch resistance trends")
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

func (h *DashboardHandler) GetEffectiveness(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	effectiveness, err := h.dashboard.GetEffectiveness(r.Context(), filter)
	if err != nil {
		h.logger.Error("dashboard effectiveness failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch antibiotic effectiveness")
		return
	}
	writeJSON(w, http.StatusOK, effectiveness)
}
