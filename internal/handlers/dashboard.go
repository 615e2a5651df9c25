package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"growtracker/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
	logger  *zap.SugaredLogger
}

func NewDashboardHandler(s *service.DashboardService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{service: s, logger: logger}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
