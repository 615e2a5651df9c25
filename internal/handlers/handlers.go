package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"growtracker/internal/config"
	"growtracker/internal/middleware"
	"growtracker/internal/service"
	"growtracker/internal/storage"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires the route tree.
func NewHandler(
	plantService *service.PlantService,
	actionService *service.ActionService,
	imageService *service.ImageService,
	dashboardService *service.DashboardService,
	db *mongo.Database,
	store storage.Store,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	plantHandler := NewPlantHandler(plantService, logger)
	actionHandler := NewActionHandler(actionService, logger)
	imageHandler := NewImageHandler(imageService, logger, cfg)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)
	healthHandler := NewHealthHandler(db, store, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/dashboard/stats", dashboardHandler.Stats)

		r.Route("/plants", func(r chi.Router) {
			r.Get("/", plantHandler.List)
			r.Post("/", plantHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", plantHandler.Get)
				r.Patch("/", plantHandler.Update)
				r.Delete("/", plantHandler.Delete)
				r.Get("/growth", plantHandler.ListGrowthMetrics)
				r.Post("/growth", plantHandler.AddGrowthMetric)
				r.Get("/stats", plantHandler.Stats)
			})
		})

		r.Route("/actions", func(r chi.Router) {
			r.Get("/", actionHandler.List)
			r.Post("/", actionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", actionHandler.Get)
				r.Patch("/", actionHandler.Update)
				r.Delete("/", actionHandler.Delete)
			})
		})

		r.Route("/images", func(r chi.Router) {
			r.Get("/entity", imageHandler.ListForEntity)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", imageHandler.Get)
				r.Delete("/", imageHandler.Delete)
			})
		})

		r.Post("/uploads", imageHandler.Upload)
	})

	return &Handler{Router: r}
}
