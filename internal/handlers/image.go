package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"growtracker/internal/config"
	"growtracker/internal/model"
	"growtracker/internal/service"
)

type ImageHandler struct {
	service *service.ImageService
	logger  *zap.SugaredLogger
	maxMB   int64
}

func NewImageHandler(s *service.ImageService, logger *zap.SugaredLogger, cfg *config.Config) *ImageHandler {
	return &ImageHandler{service: s, logger: logger, maxMB: int64(cfg.UploadMaxMB)}
}

// Upload accepts a multipart form with fields file, entityType and
// entityId. The blob is stored before metadata; a metadata failure rolls
// the blob back.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.maxMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "upload too large"})
			return
		}
		writeError(w, h.logger, &model.ValidationError{Field: "body", Reason: "malformed multipart form"})
		return
	}

	entityType, err := model.ParseEntityType(r.FormValue("entityType"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	entityID := r.FormValue("entityId")

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.logger, &model.ValidationError{Field: "file", Reason: "required"})
		return
	}
	defer file.Close()

	img, err := h.service.Upload(r.Context(), service.UploadInput{
		EntityType:  entityType,
		EntityID:    entityID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

// ListForEntity returns the images of one plant or action, with access
// URLs, newest upload first.
func (h *ImageHandler) ListForEntity(w http.ResponseWriter, r *http.Request) {
	entityType, err := model.ParseEntityType(r.URL.Query().Get("entityType"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	entityID := r.URL.Query().Get("entityId")
	if entityID == "" {
		writeError(w, h.logger, &model.ValidationError{Field: "entityId", Reason: "required"})
		return
	}
	images, err := h.service.ListForEntity(r.Context(), entityType, entityID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
