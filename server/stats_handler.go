package server

import (
	"net/http"

	"anganwadi/logger"
)

// DashboardStatsHandler handles GET /dashboard-stats.
func (h *APIHandler) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.programService.DashboardStats(r.Context())
	if err != nil {
		logger.Error("Dashboard stats failed", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
