package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActionType — kind of logged activity.
type ActionType string

const (
	ActionWatering      ActionType = "Watering"
	ActionFeeding       ActionType = "Feeding"
	ActionPruning       ActionType = "Pruning"
	ActionTraining      ActionType = "Training"
	ActionTransplanting ActionType = "Transplanting"
	ActionOther         ActionType = "Other"
)

// ActionTypes lists every action type in a stable order.
var ActionTypes = []ActionType{
	ActionWatering,
	ActionFeeding,
	ActionPruning,
	ActionTraining,
	ActionTransplanting,
	ActionOther,
}

func (t ActionType) Valid() bool {
	for _, known := range ActionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Nutrient is the only validated sub-shape of action details, used for
// Feeding actions.
type Nutrient struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
}

// ActionDetails is an open-ended payload attached to an action.
type ActionDetails map[string]any

// Nutrients decodes the details.nutrients sub-shape. Entries that do not
// match the expected shape are skipped.
func (d ActionDetails) Nutrients() []Nutrient {
	raw, ok := d["nutrients"]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]Nutrient, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		n := Nutrient{}
		if v, ok := m["name"].(string); ok {
			n.Name = v
		}
		if v, ok := m["unit"].(string); ok {
			n.Unit = v
		}
		switch v := m["quantity"].(type) {
		case float64:
			n.Quantity = v
		case int:
			n.Quantity = float64(v)
		case int64:
			n.Quantity = float64(v)
		}
		if n.Name != "" {
			out = append(out, n)
		}
	}
	return out
}

// Action — a logged activity performed on a plant at a point in time.
// Date is when the action happened, distinct from CreatedAt.
type Action struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlantID    primitive.ObjectID `bson:"plantId" json:"plantId"`
	ActionType ActionType         `bson:"actionType" json:"actionType"`
	Date       time.Time          `bson:"date" json:"date"`
	Details    ActionDetails      `bson:"details,omitempty" json:"details,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ImageIDs   []string           `bson:"imageIds" json:"imageIds"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (a *Action) Validate() error {
	if a.PlantID.IsZero() {
		return &ValidationError{Field: "plantId", Reason: "required"}
	}
	if !a.ActionType.Valid() {
		return &ValidationError{Field: "actionType", Reason: "unknown action type"}
	}
	if a.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if a.ActionType == ActionFeeding {
		if raw, ok := a.Details["nutrients"]; ok {
			if _, isList := raw.([]any); !isList {
				return &ValidationError{Field: "details.nutrients", Reason: "must be a list"}
			}
		}
	}
	return nil
}
