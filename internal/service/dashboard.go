package service

import (
	"context"
	"time"

	"growtracker/internal/metrics"
	"growtracker/internal/model"
	"growtracker/internal/repo"
)

// DashboardService aggregates derived metrics across the whole grow.
type DashboardService struct {
	plants   repo.PlantRepository
	actions  repo.ActionRepository
	harvest  metrics.HarvestParams
	watering int
}

func NewDashboardService(
	plants repo.PlantRepository,
	actions repo.ActionRepository,
	harvest metrics.HarvestParams,
	wateringIntervalDays int,
) *DashboardService {
	return &DashboardService{
		plants:   plants,
		actions:  actions,
		harvest:  harvest,
		watering: wateringIntervalDays,
	}
}

// DashboardStats is the dashboard overview.
type DashboardStats struct {
	ActivePlants        int                    `json:"activePlants"`
	HarvestedLast90Days int                    `json:"harvestedLast90Days"`
	DaysToHarvest       *int                   `json:"daysToHarvest"`
	ActionsLastWeek     int                    `json:"actionsLastWeek"`
	UpcomingWaterings   []metrics.WateringTask `json:"upcomingWaterings"`
}

// Stats computes the dashboard overview: active plant count, harvests in
// the last 90 days, the closest harvest estimate among flowering plants,
// last week's activity and the upcoming watering schedule.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now().UTC()

	plants, err := s.plants.List(ctx, false)
	if err != nil {
		return nil, err
	}

	active := make([]model.Plant, 0, len(plants))
	for _, p := range plants {
		if p.Status == model.StatusGrowing {
			active = append(active, p)
		}
	}

	// per-plant actions for the harvest estimate and watering schedule
	actionsByPlant := make(map[string][]model.Action, len(active))
	for _, p := range active {
		acts, err := s.actions.ListForPlant(ctx, p.ID.Hex())
		if err != nil {
			return nil, err
		}
		actionsByPlant[p.ID.Hex()] = acts
	}

	lastWeek, err := s.actions.ListSince(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		ActivePlants:        len(active),
		HarvestedLast90Days: metrics.CountHarvestedWithin(plants, now, 90),
		ActionsLastWeek:     metrics.CountWithinWindow(lastWeek, now, 7),
		UpcomingWaterings:   metrics.UpcomingWaterings(active, actionsByPlant, now, s.watering),
	}
	if remaining, ok := metrics.MinDaysToHarvest(active, actionsByPlant, now, s.harvest); ok {
		stats.DaysToHarvest = &remaining
	}
	return stats, nil
}
