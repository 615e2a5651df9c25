package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"growtracker/internal/model"
)

// ActionRepository is the persistence contract for actions.
type ActionRepository interface {
	Create(ctx context.Context, a *model.Action) (*model.Action, error)
	GetByID(ctx context.Context, id string) (*model.Action, error)

	// ListForPlant returns a plant's actions ordered by date descending.
	ListForPlant(ctx context.Context, plantID string) ([]model.Action, error)

	// ListRecent returns the most recent actions across all plants.
	ListRecent(ctx context.Context, limit int64) ([]model.Action, error)

	// ListSince returns all actions dated at or after since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]model.Action, error)

	Update(ctx context.Context, id string, fields map[string]any) (*model.Action, error)
	Delete(ctx context.Context, id string) error

	// DeleteForPlant removes every action of a plant; returns the number
	// of actions removed.
	DeleteForPlant(ctx context.Context, plantID string) (int64, error)

	// AddImageRef / RemoveImageRef are idempotent set operations on
	// imageIds; adding an id twice or removing a missing one is a no-op.
	AddImageRef(ctx context.Context, id, imageID string) error
	RemoveImageRef(ctx context.Context, id, imageID string) error

	// CountByType groups a plant's stored actions by actionType. Types
	// with no actions are absent from the result.
	CountByType(ctx context.Context, plantID string) (map[model.ActionType]int, error)
}

type actionRepo struct {
	coll *mongo.Collection
}

// NewActionRepository creates the Mongo-backed action repository.
func NewActionRepository(db *mongo.Database) ActionRepository {
	return &actionRepo{coll: db.Collection(collActions)}
}

func (r *actionRepo) Create(ctx context.Context, a *model.Action) (*model.Action, error) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.ImageIDs == nil {
		a.ImageIDs = []string{}
	}

	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("insert action: %w", err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return a, nil
}

func (r *actionRepo) GetByID(ctx context.Context, id string) (*model.Action, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var a model.Action
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find action %s: %w", id, err)
	}
	return &a, nil
}

func (r *actionRepo) ListForPlant(ctx context.Context, plantID string) ([]model.Action, error) {
	oid, err := parseID(plantID)
	if err != nil {
		return nil, err
	}
	cur, err := r.coll.Find(ctx, bson.M{"plantId": oid},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list actions for plant %s: %w", plantID, err)
	}
	actions := []model.Action{}
	if err := cur.All(ctx, &actions); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	return actions, nil
}

func (r *actionRepo) ListRecent(ctx context.Context, limit int64) ([]model.Action, error) {
	cur, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent actions: %w", err)
	}
	actions := []model.Action{}
	if err := cur.All(ctx, &actions); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	return actions, nil
}

func (r *actionRepo) ListSince(ctx context.Context, since time.Time) ([]model.Action, error) {
	cur, err := r.coll.Find(ctx, bson.M{"date": bson.M{"$gte": since}},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list actions since %s: %w", since, err)
	}
	actions := []model.Action{}
	if err := cur.All(ctx, &actions); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	return actions, nil
}

func (r *actionRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Action, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": sanitizeUpdate(fields, time.Now().UTC())}
	var a model.Action
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("update action %s: %w", id, err)
	}
	return &a, nil
}

func (r *actionRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete action %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *actionRepo) DeleteForPlant(ctx context.Context, plantID string) (int64, error) {
	oid, err := parseID(plantID)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"plantId": oid})
	if err != nil {
		return 0, fmt.Errorf("delete actions for plant %s: %w", plantID, err)
	}
	return res.DeletedCount, nil
}

func (r *actionRepo) AddImageRef(ctx context.Context, id, imageID string) error {
	return r.updateImageRefs(ctx, id, bson.M{"$addToSet": bson.M{"imageIds": imageID}})
}

func (r *actionRepo) RemoveImageRef(ctx context.Context, id, imageID string) error {
	return r.updateImageRefs(ctx, id, bson.M{"$pull": bson.M{"imageIds": imageID}})
}

func (r *actionRepo) updateImageRefs(ctx context.Context, id string, op bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	op["$set"] = bson.M{"updatedAt": time.Now().UTC()}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, op)
	if err != nil {
		return fmt.Errorf("update image refs on action %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *actionRepo) CountByType(ctx context.Context, plantID string) (map[model.ActionType]int, error) {
	oid, err := parseID(plantID)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"plantId": oid}}},
		{{Key: "$group", Value: bson.M{"_id": "$actionType", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count actions by type for plant %s: %w", plantID, err)
	}
	var rows []struct {
		Type  model.ActionType `bson:"_id"`
		Count int              `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode action counts: %w", err)
	}
	counts := make(map[model.ActionType]int, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}
