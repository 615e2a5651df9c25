package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"growtracker/internal/storage"
)

type HealthHandler struct {
	db     *mongo.Database
	store  storage.Store
	logger *zap.SugaredLogger
}

func NewHealthHandler(db *mongo.Database, store storage.Store, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{db: db, store: store, logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

// Health reports readiness: database ping plus bucket check, each with a
// short deadline so a hung connection does not hang the probe.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Database: "ok", Storage: "ok"}

	if h.db != nil {
		if err := h.db.Client().Ping(ctx, readpref.Primary()); err != nil {
			h.logger.Errorw("database health check failed", "error", err)
			resp.Status, resp.Database = "degraded", "unreachable"
		}
	}
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Errorw("storage health check failed", "error", err)
			resp.Status, resp.Storage = "degraded", "unreachable"
		}
	}

	if resp.Status != "ok" {
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
