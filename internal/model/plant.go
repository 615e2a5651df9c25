package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlantStatus — lifecycle state of a plant.
type PlantStatus string

const (
	StatusGrowing   PlantStatus = "Growing"
	StatusHarvested PlantStatus = "Harvested"
	StatusArchived  PlantStatus = "Archived"
)

func (s PlantStatus) Valid() bool {
	switch s {
	case StatusGrowing, StatusHarvested, StatusArchived:
		return true
	}
	return false
}

// GrowCycleType — current growth phase.
type GrowCycleType string

const (
	CycleVegetative GrowCycleType = "Vegetative"
	CycleFlowering  GrowCycleType = "Flowering"
)

func (c GrowCycleType) Valid() bool {
	return c == CycleVegetative || c == CycleFlowering
}

// GrowthMetric is a timestamped height measurement. Insertion order of
// metrics on a plant is not guaranteed chronological; consumers must sort
// by date before deriving trends.
type GrowthMetric struct {
	Date   time.Time `bson:"date" json:"date"`
	Height float64   `bson:"height" json:"height"`
	Notes  string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (m *GrowthMetric) Validate() error {
	if m.Height < 0 {
		return &ValidationError{Field: "height", Reason: "must be a non-negative number"}
	}
	return nil
}

// Plant — a tracked cultivation subject.
type Plant struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Strain        string             `bson:"strain" json:"strain"`
	Status        PlantStatus        `bson:"status" json:"status"`
	GrowCycleType GrowCycleType      `bson:"growCycleType" json:"growCycleType"`
	StartDate     time.Time          `bson:"startDate" json:"startDate"`
	HarvestDate   *time.Time         `bson:"harvestDate,omitempty" json:"harvestDate,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	GrowthMetrics []GrowthMetric     `bson:"growthMetrics" json:"growthMetrics"`
	CoverImageID  string             `bson:"coverImageId,omitempty" json:"coverImageId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the fields required at creation time. Name uniqueness is
// enforced separately, at the persistence boundary.
func (p *Plant) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if p.Strain == "" {
		return &ValidationError{Field: "strain", Reason: "required"}
	}
	if !p.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be Growing, Harvested or Archived"}
	}
	if !p.GrowCycleType.Valid() {
		return &ValidationError{Field: "growCycleType", Reason: "must be Vegetative or Flowering"}
	}
	if p.HarvestDate != nil && !p.StartDate.IsZero() && p.HarvestDate.Before(p.StartDate) {
		return &ValidationError{Field: "harvestDate", Reason: "must not be before startDate"}
	}
	return nil
}
