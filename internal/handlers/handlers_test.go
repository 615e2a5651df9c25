package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"go.uber.org/zap"

	"growtracker/internal/config"
	"growtracker/internal/metrics"
	"growtracker/internal/service"
)

type testEnv struct {
	plants  *mockPlantRepo
	actions *mockActionRepo
	images  *mockImageRepo
	store   *mockStore
	server  *httptest.Server
}

// newTestEnv builds the full route tree over mocked repositories and a
// mocked blob store.
func newTestEnv() *testEnv {
	env := &testEnv{
		plants:  new(mockPlantRepo),
		actions: new(mockActionRepo),
		images:  new(mockImageRepo),
		store:   new(mockStore),
	}

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{
		PresignTTLSeconds:    3600,
		UploadMaxMB:          25,
		VegDays:              28,
		FloweringDays:        63,
		WateringIntervalDays: 3,
	}
	harvest := metrics.HarvestParams{VegetativeDays: cfg.VegDays, FloweringDays: cfg.FloweringDays}

	imageService := service.NewImageService(env.images, env.actions, env.store,
		time.Duration(cfg.PresignTTLSeconds)*time.Second, logger)
	plantService := service.NewPlantService(env.plants, env.actions, imageService, harvest, cfg.WateringIntervalDays)
	actionService := service.NewActionService(env.actions, imageService)
	dashboardService := service.NewDashboardService(env.plants, env.actions, harvest, cfg.WateringIntervalDays)

	h := NewHandler(plantService, actionService, imageService, dashboardService, nil, env.store, logger, cfg)
	env.server = httptest.NewServer(h.Router)
	return env
}

func (e *testEnv) close() {
	e.server.Close()
}

func (e *testEnv) do(method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return e.server.Client().Do(req)
}
