package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"growtracker/internal/metrics"
	"growtracker/internal/model"
)

func TestDashboardService_Stats(t *testing.T) {
	plants := &mockPlantRepo{}
	actions := &mockActionRepo{}
	svc := NewDashboardService(plants, actions, metrics.DefaultHarvestParams(), 3)

	now := time.Now().UTC()
	flowering := model.Plant{
		ID:            primitive.NewObjectID(),
		Name:          "Aurora",
		Status:        model.StatusGrowing,
		GrowCycleType: model.CycleFlowering,
		StartDate:     now.Add(-80*24*time.Hour + time.Hour),
	}
	veg := model.Plant{
		ID:            primitive.NewObjectID(),
		Name:          "Sprout",
		Status:        model.StatusGrowing,
		GrowCycleType: model.CycleVegetative,
		StartDate:     now.Add(-10 * 24 * time.Hour),
	}
	harvestedAt := now.Add(-30 * 24 * time.Hour)
	done := model.Plant{
		ID:          primitive.NewObjectID(),
		Name:        "Done",
		Status:      model.StatusHarvested,
		HarvestDate: &harvestedAt,
	}

	plants.On("List", mock.Anything, false).Return([]model.Plant{flowering, veg, done}, nil)
	actions.On("ListForPlant", mock.Anything, flowering.ID.Hex()).Return([]model.Action{
		{ActionType: model.ActionWatering, Date: now.Add(-24 * time.Hour)},
	}, nil)
	actions.On("ListForPlant", mock.Anything, veg.ID.Hex()).Return([]model.Action{}, nil)
	actions.On("ListSince", mock.Anything, mock.Anything).Return([]model.Action{
		{Date: now.Add(-2 * 24 * time.Hour)},
		{Date: now.Add(-6 * 24 * time.Hour)},
	}, nil)

	stats, err := svc.Stats(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 2, stats.ActivePlants)
	assert.Equal(t, 1, stats.HarvestedLast90Days)
	assert.Equal(t, 2, stats.ActionsLastWeek)
	// flowering plant is ~80 days old: 52 in flower, 11 remaining
	if assert.NotNil(t, stats.DaysToHarvest) {
		assert.Equal(t, 11, *stats.DaysToHarvest)
	}
	// watered a day ago, 3-day interval: one upcoming task
	if assert.Len(t, stats.UpcomingWaterings, 1) {
		assert.Equal(t, "Aurora", stats.UpcomingWaterings[0].PlantName)
	}
}

func TestDashboardService_Stats_EmptyGrow(t *testing.T) {
	plants := &mockPlantRepo{}
	actions := &mockActionRepo{}
	svc := NewDashboardService(plants, actions, metrics.DefaultHarvestParams(), 3)

	plants.On("List", mock.Anything, false).Return([]model.Plant{}, nil)
	actions.On("ListSince", mock.Anything, mock.Anything).Return([]model.Action{}, nil)

	stats, err := svc.Stats(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, stats.ActivePlants)
	assert.Nil(t, stats.DaysToHarvest)
	assert.Empty(t, stats.UpcomingWaterings)
}
