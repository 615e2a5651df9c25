package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"growtracker/internal/model"
	"growtracker/internal/service"
)

type PlantHandler struct {
	service *service.PlantService
	logger  *zap.SugaredLogger
}

func NewPlantHandler(s *service.PlantService, logger *zap.SugaredLogger) *PlantHandler {
	return &PlantHandler{service: s, logger: logger}
}

// List returns all plants, newest update first. ?active=true keeps only
// growing plants.
func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	plants, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, plants)
}

func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Plant
	if err := decodeBody(r, &p); err != nil {
		writeError(w, h.logger, err)
		return
	}
	created, err := h.service.Create(r.Context(), &p)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type plantPatchRequest struct {
	Name          *string              `json:"name"`
	Strain        *string              `json:"strain"`
	Status        *model.PlantStatus   `json:"status"`
	GrowCycleType *model.GrowCycleType `json:"growCycleType"`
	StartDate     *time.Time           `json:"startDate"`
	HarvestDate   *time.Time           `json:"harvestDate"`
	Notes         *string              `json:"notes"`
	CoverImageID  *string              `json:"coverImageId"`
}

func (h *PlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req plantPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	patch := service.PlantPatch{
		Name:          req.Name,
		Strain:        req.Strain,
		Status:        req.Status,
		GrowCycleType: req.GrowCycleType,
		StartDate:     req.StartDate,
		HarvestDate:   req.HarvestDate,
		Notes:         req.Notes,
		CoverImageID:  req.CoverImageID,
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListGrowthMetrics returns the plant's measurements sorted by date
// ascending. Stored order is insertion order and may not be chronological.
func (h *PlantHandler) ListGrowthMetrics(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	out := make([]model.GrowthMetric, len(p.GrowthMetrics))
	copy(out, p.GrowthMetrics)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	writeJSON(w, http.StatusOK, out)
}

func (h *PlantHandler) AddGrowthMetric(w http.ResponseWriter, r *http.Request) {
	var m model.GrowthMetric
	if err := decodeBody(r, &m); err != nil {
		writeError(w, h.logger, err)
		return
	}
	p, err := h.service.AddGrowthMetric(r.Context(), chi.URLParam(r, "id"), m)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PlantHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
