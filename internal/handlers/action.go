package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"growtracker/internal/model"
	"growtracker/internal/service"
)

const defaultRecentActions = 20

type ActionHandler struct {
	service *service.ActionService
	logger  *zap.SugaredLogger
}

func NewActionHandler(s *service.ActionService, logger *zap.SugaredLogger) *ActionHandler {
	return &ActionHandler{service: s, logger: logger}
}

// List returns ?plantId= history (date descending), or without plantId the
// most recent actions across all plants, capped by ?limit=.
func (h *ActionHandler) List(w http.ResponseWriter, r *http.Request) {
	plantID := r.URL.Query().Get("plantId")
	limit := int64(defaultRecentActions)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			writeError(w, h.logger, &model.ValidationError{Field: "limit", Reason: "must be a positive integer"})
			return
		}
		limit = parsed
	}
	actions, err := h.service.List(r.Context(), plantID, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (h *ActionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var a model.Action
	if err := decodeBody(r, &a); err != nil {
		writeError(w, h.logger, err)
		return
	}
	created, err := h.service.Create(r.Context(), &a)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type actionPatchRequest struct {
	ActionType *model.ActionType    `json:"actionType"`
	Date       *time.Time           `json:"date"`
	Details    *model.ActionDetails `json:"details"`
	Notes      *string              `json:"notes"`
}

func (h *ActionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req actionPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	patch := service.ActionPatch{
		ActionType: req.ActionType,
		Date:       req.Date,
		Details:    req.Details,
		Notes:      req.Notes,
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ActionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
