// Package metrics computes derived values over plants and actions: age,
// days-to-harvest estimates, action counts and watering schedules. All
// functions are pure; dates are treated as naive UTC instants and deltas
// are whole calendar days.
package metrics

import (
	"math"
	"sort"
	"strings"
	"time"

	"growtracker/internal/model"
)

const day = 24 * time.Hour

// HarvestParams — heuristic grow-cycle assumptions. The defaults match
// common indoor schedules: four weeks vegetative, nine weeks flowering.
type HarvestParams struct {
	VegetativeDays int
	FloweringDays  int
}

// DefaultHarvestParams returns the 28/63 day defaults.
func DefaultHarvestParams() HarvestParams {
	return HarvestParams{VegetativeDays: 28, FloweringDays: 63}
}

// AgeInDays returns the whole-day age of start relative to now, rounding
// partial days up. Negative when start is in the future; callers decide
// whether to clamp.
func AgeInDays(now, start time.Time) int {
	return int(math.Ceil(float64(now.Sub(start)) / float64(day)))
}

// LatestHeight returns the height of the most recent growth metric, after
// sorting by date ascending, or 0 when the plant has no metrics yet.
func LatestHeight(p model.Plant) float64 {
	if len(p.GrowthMetrics) == 0 {
		return 0
	}
	sorted := make([]model.GrowthMetric, len(p.GrowthMetrics))
	copy(sorted, p.GrowthMetrics)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted[len(sorted)-1].Height
}

// switchToFlowerNote is matched case-insensitively against action notes to
// detect the vegetative-to-flowering transition.
const switchToFlowerNote = "switch to flower"

// EstimateDaysToHarvest estimates the days remaining until harvest for a
// single plant. Applies only to flowering plants that are not yet
// harvested; ok is false otherwise.
//
// If an action's notes record the switch to flowering, days in flowering
// are counted from that action's date. Otherwise the plant is assumed to
// have spent hp.VegetativeDays in veg before flowering. The remainder of
// hp.FloweringDays is clamped at zero.
func EstimateDaysToHarvest(p model.Plant, actions []model.Action, now time.Time, hp HarvestParams) (int, bool) {
	if p.GrowCycleType != model.CycleFlowering || p.Status == model.StatusHarvested {
		return 0, false
	}

	var daysInFlowering int
	if switched, ok := switchToFlowerAction(actions); ok {
		daysInFlowering = AgeInDays(now, switched.Date)
	} else {
		daysInFlowering = max(0, AgeInDays(now, p.StartDate)-hp.VegetativeDays)
	}

	return max(0, hp.FloweringDays-daysInFlowering), true
}

func switchToFlowerAction(actions []model.Action) (model.Action, bool) {
	for _, a := range actions {
		if a.Notes != "" && strings.Contains(strings.ToLower(a.Notes), switchToFlowerNote) {
			return a, true
		}
	}
	return model.Action{}, false
}

// MinDaysToHarvest returns the smallest harvest estimate across a set of
// plants, i.e. the plant closest to harvest. ok is false when no plant
// yields an estimate.
func MinDaysToHarvest(plants []model.Plant, actionsByPlant map[string][]model.Action, now time.Time, hp HarvestParams) (int, bool) {
	best, found := 0, false
	for _, p := range plants {
		remaining, ok := EstimateDaysToHarvest(p, actionsByPlant[p.ID.Hex()], now, hp)
		if !ok {
			continue
		}
		if !found || remaining < best {
			best, found = remaining, true
		}
	}
	return best, found
}

// ActionCountsByType counts actions per type. Every known action type is
// present in the result, zero-filled when absent.
func ActionCountsByType(actions []model.Action) map[model.ActionType]int {
	counts := make(map[model.ActionType]int, len(model.ActionTypes))
	for _, t := range model.ActionTypes {
		counts[t] = 0
	}
	for _, a := range actions {
		counts[a.ActionType]++
	}
	return counts
}

// FillActionCounts zero-fills missing action types in counts produced
// elsewhere (such as a grouped database aggregation).
func FillActionCounts(counts map[model.ActionType]int) map[model.ActionType]int {
	out := make(map[model.ActionType]int, len(model.ActionTypes))
	for _, t := range model.ActionTypes {
		out[t] = counts[t]
	}
	return out
}

// CountWithinWindow counts actions dated within the last windowDays.
func CountWithinWindow(actions []model.Action, now time.Time, windowDays int) int {
	cutoff := now.Add(-time.Duration(windowDays) * day)
	n := 0
	for _, a := range actions {
		if !a.Date.Before(cutoff) {
			n++
		}
	}
	return n
}

// NextWatering returns the due date of the next watering, intervalDays
// after the most recent watering action. ok is false when the plant has
// never been watered or the computed date is not in the future.
func NextWatering(actions []model.Action, now time.Time, intervalDays int) (time.Time, bool) {
	var last time.Time
	for _, a := range actions {
		if a.ActionType == model.ActionWatering && a.Date.After(last) {
			last = a.Date
		}
	}
	if last.IsZero() {
		return time.Time{}, false
	}
	next := last.Add(time.Duration(intervalDays) * day)
	if !next.After(now) {
		return time.Time{}, false
	}
	return next, true
}

// CountHarvestedWithin counts plants harvested within the last windowDays.
// Plants marked harvested without a harvest date fall back to their update
// time.
func CountHarvestedWithin(plants []model.Plant, now time.Time, windowDays int) int {
	cutoff := now.Add(-time.Duration(windowDays) * day)
	n := 0
	for _, p := range plants {
		if p.Status != model.StatusHarvested {
			continue
		}
		harvested := p.UpdatedAt
		if p.HarvestDate != nil {
			harvested = *p.HarvestDate
		}
		if !harvested.Before(cutoff) {
			n++
		}
	}
	return n
}

// WateringTask is an upcoming scheduled watering for a plant.
type WateringTask struct {
	PlantID   string    `json:"plantId"`
	PlantName string    `json:"plantName"`
	Due       time.Time `json:"due"`
}

// UpcomingWaterings builds the watering schedule across active plants,
// sorted by due date ascending.
func UpcomingWaterings(plants []model.Plant, actionsByPlant map[string][]model.Action, now time.Time, intervalDays int) []WateringTask {
	tasks := make([]WateringTask, 0)
	for _, p := range plants {
		if p.Status != model.StatusGrowing {
			continue
		}
		due, ok := NextWatering(actionsByPlant[p.ID.Hex()], now, intervalDays)
		if !ok {
			continue
		}
		tasks = append(tasks, WateringTask{PlantID: p.ID.Hex(), PlantName: p.Name, Due: due})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Due.Before(tasks[j].Due) })
	return tasks
}
