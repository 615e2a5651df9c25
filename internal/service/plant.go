package service

import (
	"context"
	"fmt"
	"time"

	"growtracker/internal/metrics"
	"growtracker/internal/model"
	"growtracker/internal/repo"
)

// PlantService owns the plant lifecycle, including the cascade that keeps
// actions, images and blobs from being orphaned when a plant goes away.
type PlantService struct {
	plants   repo.PlantRepository
	actions  repo.ActionRepository
	images   *ImageService
	harvest  metrics.HarvestParams
	watering int
}

func NewPlantService(
	plants repo.PlantRepository,
	actions repo.ActionRepository,
	images *ImageService,
	harvest metrics.HarvestParams,
	wateringIntervalDays int,
) *PlantService {
	return &PlantService{
		plants:   plants,
		actions:  actions,
		images:   images,
		harvest:  harvest,
		watering: wateringIntervalDays,
	}
}

// Create validates and persists a new plant. Status defaults to Growing,
// startDate to now.
func (s *PlantService) Create(ctx context.Context, p *model.Plant) (*model.Plant, error) {
	if p.Status == "" {
		p.Status = model.StatusGrowing
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.plants.Create(ctx, p)
}

func (s *PlantService) Get(ctx context.Context, id string) (*model.Plant, error) {
	return s.plants.GetByID(ctx, id)
}

func (s *PlantService) List(ctx context.Context, activeOnly bool) ([]model.Plant, error) {
	return s.plants.List(ctx, activeOnly)
}

// PlantPatch is a partial update; nil fields are left untouched.
type PlantPatch struct {
	Name          *string
	Strain        *string
	Status        *model.PlantStatus
	GrowCycleType *model.GrowCycleType
	StartDate     *time.Time
	HarvestDate   *time.Time
	Notes         *string
	CoverImageID  *string
}

func (p PlantPatch) fields() (map[string]any, error) {
	out := map[string]any{}
	if p.Name != nil {
		if *p.Name == "" {
			return nil, &model.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		out["name"] = *p.Name
	}
	if p.Strain != nil {
		if *p.Strain == "" {
			return nil, &model.ValidationError{Field: "strain", Reason: "must not be empty"}
		}
		out["strain"] = *p.Strain
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, &model.ValidationError{Field: "status", Reason: "must be Growing, Harvested or Archived"}
		}
		out["status"] = *p.Status
	}
	if p.GrowCycleType != nil {
		if !p.GrowCycleType.Valid() {
			return nil, &model.ValidationError{Field: "growCycleType", Reason: "must be Vegetative or Flowering"}
		}
		out["growCycleType"] = *p.GrowCycleType
	}
	if p.StartDate != nil {
		out["startDate"] = *p.StartDate
	}
	if p.HarvestDate != nil {
		out["harvestDate"] = *p.HarvestDate
	}
	if p.Notes != nil {
		out["notes"] = *p.Notes
	}
	if p.CoverImageID != nil {
		out["coverImageId"] = *p.CoverImageID
	}
	return out, nil
}

// Update applies a partial update. Transitioning to Harvested records the
// harvest date when the caller did not supply one.
func (s *PlantService) Update(ctx context.Context, id string, patch PlantPatch) (*model.Plant, error) {
	fields, err := patch.fields()
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && *patch.Status == model.StatusHarvested && patch.HarvestDate == nil {
		fields["harvestDate"] = time.Now().UTC()
	}
	return s.plants.Update(ctx, id, fields)
}

// Delete removes a plant together with its images, its actions and their
// images. A failure mid-cascade aborts and is surfaced; what was already
// removed stays removed.
func (s *PlantService) Delete(ctx context.Context, id string) error {
	if _, err := s.plants.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.images.DeleteForEntity(ctx, model.EntityPlant, id); err != nil {
		return fmt.Errorf("delete plant %s images: %w", id, err)
	}

	actions, err := s.actions.ListForPlant(ctx, id)
	if err != nil {
		return err
	}
	for _, a := range actions {
		if err := s.images.DeleteForEntity(ctx, model.EntityAction, a.ID.Hex()); err != nil {
			return fmt.Errorf("delete action %s images: %w", a.ID.Hex(), err)
		}
	}
	if _, err := s.actions.DeleteForPlant(ctx, id); err != nil {
		return err
	}

	return s.plants.Delete(ctx, id)
}

// AddGrowthMetric appends a height measurement; date defaults to now.
func (s *PlantService) AddGrowthMetric(ctx context.Context, plantID string, m model.GrowthMetric) (*model.Plant, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}
	return s.plants.AppendGrowthMetric(ctx, plantID, m)
}

// PlantStats are the derived per-plant metrics.
type PlantStats struct {
	AgeDays       int                      `json:"ageDays"`
	CurrentHeight float64                  `json:"currentHeight"`
	ActionCounts  map[model.ActionType]int `json:"actionCounts"`
	DaysToHarvest *int                     `json:"daysToHarvest"`
	NextWatering  *time.Time               `json:"nextWatering"`
}

// Stats computes the derived metrics for one plant.
func (s *PlantService) Stats(ctx context.Context, id string) (*PlantStats, error) {
	p, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	actions, err := s.actions.ListForPlant(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.actions.CountByType(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stats := &PlantStats{
		AgeDays:       metrics.AgeInDays(now, p.StartDate),
		CurrentHeight: metrics.LatestHeight(*p),
		ActionCounts:  metrics.FillActionCounts(counts),
	}
	if remaining, ok := metrics.EstimateDaysToHarvest(*p, actions, now, s.harvest); ok {
		stats.DaysToHarvest = &remaining
	}
	if due, ok := metrics.NextWatering(actions, now, s.watering); ok {
		stats.NextWatering = &due
	}
	return stats, nil
}
