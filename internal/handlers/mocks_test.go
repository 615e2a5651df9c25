package handlers

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"growtracker/internal/model"
	"growtracker/internal/repo"
	"growtracker/internal/storage"
)

// Mocks for the repository and storage contracts, shared by the handler
// tests. The handlers are exercised through real services wired over these
// mocks, so requests travel the same path they do in production.

type mockPlantRepo struct{ mock.Mock }

func (m *mockPlantRepo) Create(ctx context.Context, p *model.Plant) (*model.Plant, error) {
	args := m.Called(ctx, p)
	if v, ok := args.Get(0).(*model.Plant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlantRepo) GetByID(ctx context.Context, id string) (*model.Plant, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Plant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlantRepo) List(ctx context.Context, activeOnly bool) ([]model.Plant, error) {
	args := m.Called(ctx, activeOnly)
	if v, ok := args.Get(0).([]model.Plant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlantRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Plant, error) {
	args := m.Called(ctx, id, fields)
	if v, ok := args.Get(0).(*model.Plant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPlantRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockPlantRepo) AppendGrowthMetric(ctx context.Context, id string, gm model.GrowthMetric) (*model.Plant, error) {
	args := m.Called(ctx, id, gm)
	if v, ok := args.Get(0).(*model.Plant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.PlantRepository = (*mockPlantRepo)(nil)

type mockActionRepo struct{ mock.Mock }

func (m *mockActionRepo) Create(ctx context.Context, a *model.Action) (*model.Action, error) {
	args := m.Called(ctx, a)
	if v, ok := args.Get(0).(*model.Action); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockActionRepo) GetByID(ctx context.Context, id string) (*model.Action, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Action); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockActionRepo) ListForPlant(ctx context.Context, plantID string) ([]model.Action, error) {
	args := m.Called(ctx, plantID)
	if v, ok := args.Get(0).([]model.Action); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockActionRepo) ListRecent(ctx context.Context, limit int64) ([]model.Action, error) {
	args := m.Called(ctx, limit)
	if v, ok := args.Get(0).([]model.Action); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockActionRepo) ListSince(ctx context.Context, since time.Time) ([]model.Action, error) {
	args := m.Called(ctx, since)
	if v, ok := args.Get(0).([]model.Action); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockActionRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Action, error) {
	args := m.Called(ctx, id, fields)
	if v, ok := args.Get(0).(*model.Action); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockActionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockActionRepo) DeleteForPlant(ctx context.Context, plantID string) (int64, error) {
	args := m.Called(ctx, plantID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockActionRepo) AddImageRef(ctx context.Context, id, imageID string) error {
	return m.Called(ctx, id, imageID).Error(0)
}
func (m *mockActionRepo) RemoveImageRef(ctx context.Context, id, imageID string) error {
	return m.Called(ctx, id, imageID).Error(0)
}
func (m *mockActionRepo) CountByType(ctx context.Context, plantID string) (map[model.ActionType]int, error) {
	args := m.Called(ctx, plantID)
	if v, ok := args.Get(0).(map[model.ActionType]int); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ActionRepository = (*mockActionRepo)(nil)

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	args := m.Called(ctx, img)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockImageRepo) GetByID(ctx context.Context, id string) (*model.Image, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockImageRepo) ListForEntity(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Image, error) {
	args := m.Called(ctx, entityType, entityID)
	if v, ok := args.Get(0).([]model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockImageRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.ImageRepository = (*mockImageRepo)(nil)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, r, size, contentType).Error(0)
}
func (m *mockStore) AccessURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ storage.Store = (*mockStore)(nil)
