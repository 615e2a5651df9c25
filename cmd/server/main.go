package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"growtracker/internal/config"
	"growtracker/internal/handlers"
	"growtracker/internal/metrics"
	"growtracker/internal/middleware"
	"growtracker/internal/repo"
	"growtracker/internal/service"
	"growtracker/internal/storage"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := repo.InitDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			sugar.Errorw("Failed to disconnect from database", "error", err)
		}
	}()

	store, err := storage.NewMinioStore(ctx, storage.Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		sugar.Fatalw("failed to initialize blob store", "error", err)
	}

	plantRepo := repo.NewPlantRepository(db)
	actionRepo := repo.NewActionRepository(db)
	imageRepo := repo.NewImageRepository(db)

	harvest := metrics.HarvestParams{
		VegetativeDays: cfg.VegDays,
		FloweringDays:  cfg.FloweringDays,
	}
	presignTTL := time.Duration(cfg.PresignTTLSeconds) * time.Second

	imageService := service.NewImageService(imageRepo, actionRepo, store, presignTTL, sugar)
	plantService := service.NewPlantService(plantRepo, actionRepo, imageService, harvest, cfg.WateringIntervalDays)
	actionService := service.NewActionService(actionRepo, imageService)
	dashboardService := service.NewDashboardService(plantRepo, actionRepo, harvest, cfg.WateringIntervalDays)

	h := handlers.NewHandler(plantService, actionService, imageService, dashboardService, db, store, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"MongoDB", cfg.MongoDB,
		"S3Endpoint", cfg.S3Endpoint,
		"S3Bucket", cfg.S3Bucket,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
