package service

import (
	"context"
	"fmt"
	"time"

	"growtracker/internal/model"
	"growtracker/internal/repo"
)

// ActionService owns the action lifecycle. Deleting an action also removes
// the images attached to it.
type ActionService struct {
	actions repo.ActionRepository
	images  *ImageService
}

func NewActionService(actions repo.ActionRepository, images *ImageService) *ActionService {
	return &ActionService{actions: actions, images: images}
}

func (s *ActionService) Create(ctx context.Context, a *model.Action) (*model.Action, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return s.actions.Create(ctx, a)
}

func (s *ActionService) Get(ctx context.Context, id string) (*model.Action, error) {
	return s.actions.GetByID(ctx, id)
}

// List returns a plant's actions when plantID is set, otherwise the most
// recent actions across all plants.
func (s *ActionService) List(ctx context.Context, plantID string, limit int64) ([]model.Action, error) {
	if plantID != "" {
		return s.actions.ListForPlant(ctx, plantID)
	}
	return s.actions.ListRecent(ctx, limit)
}

// ActionPatch is a partial update; nil fields are left untouched.
type ActionPatch struct {
	ActionType *model.ActionType
	Date       *time.Time
	Details    *model.ActionDetails
	Notes      *string
}

func (p ActionPatch) fields() (map[string]any, error) {
	out := map[string]any{}
	if p.ActionType != nil {
		if !p.ActionType.Valid() {
			return nil, &model.ValidationError{Field: "actionType", Reason: "unknown action type"}
		}
		out["actionType"] = *p.ActionType
	}
	if p.Date != nil {
		if p.Date.IsZero() {
			return nil, &model.ValidationError{Field: "date", Reason: "required"}
		}
		out["date"] = *p.Date
	}
	if p.Details != nil {
		out["details"] = *p.Details
	}
	if p.Notes != nil {
		out["notes"] = *p.Notes
	}
	return out, nil
}

func (s *ActionService) Update(ctx context.Context, id string, patch ActionPatch) (*model.Action, error) {
	fields, err := patch.fields()
	if err != nil {
		return nil, err
	}
	return s.actions.Update(ctx, id, fields)
}

// Delete removes the action and its images (metadata and blobs).
func (s *ActionService) Delete(ctx context.Context, id string) error {
	if _, err := s.actions.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.images.DeleteForEntity(ctx, model.EntityAction, id); err != nil {
		return fmt.Errorf("delete action %s images: %w", id, err)
	}
	return s.actions.Delete(ctx, id)
}
