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

// PlantRepository is the persistence contract for plants.
type PlantRepository interface {
	Create(ctx context.Context, p *model.Plant) (*model.Plant, error)

	// GetByID returns model.ErrNotFound when no plant matches.
	GetByID(ctx context.Context, id string) (*model.Plant, error)

	// List returns plants ordered by updatedAt descending; activeOnly
	// restricts to Growing plants.
	List(ctx context.Context, activeOnly bool) ([]model.Plant, error)

	// Update merges the given fields into the plant and refreshes
	// updatedAt. The id and createdAt fields cannot be overwritten.
	Update(ctx context.Context, id string, fields map[string]any) (*model.Plant, error)

	Delete(ctx context.Context, id string) error

	// AppendGrowthMetric atomically appends a metric without a prior read.
	AppendGrowthMetric(ctx context.Context, id string, m model.GrowthMetric) (*model.Plant, error)
}

type plantRepo struct {
	coll *mongo.Collection
}

// NewPlantRepository creates the Mongo-backed plant repository.
func NewPlantRepository(db *mongo.Database) PlantRepository {
	return &plantRepo{coll: db.Collection(collPlants)}
}

func (r *plantRepo) Create(ctx context.Context, p *model.Plant) (*model.Plant, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.StartDate.IsZero() {
		p.StartDate = now
	}
	if p.GrowthMetrics == nil {
		p.GrowthMetrics = []model.GrowthMetric{}
	}

	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("insert plant: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (r *plantRepo) GetByID(ctx context.Context, id string) (*model.Plant, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p model.Plant
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find plant %s: %w", id, err)
	}
	return &p, nil
}

func (r *plantRepo) List(ctx context.Context, activeOnly bool) ([]model.Plant, error) {
	filter := bson.M{}
	if activeOnly {
		filter["status"] = model.StatusGrowing
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	plants := []model.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("decode plants: %w", err)
	}
	return plants, nil
}

func (r *plantRepo) Update(ctx context.Context, id string, fields map[string]any) (*model.Plant, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": sanitizeUpdate(fields, time.Now().UTC())}
	var p model.Plant
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.ErrDuplicateName
		}
		return nil, fmt.Errorf("update plant %s: %w", id, err)
	}
	return &p, nil
}

func (r *plantRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete plant %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *plantRepo) AppendGrowthMetric(ctx context.Context, id string, m model.GrowthMetric) (*model.Plant, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$push": bson.M{"growthMetrics": m},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	var p model.Plant
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("append growth metric to plant %s: %w", id, err)
	}
	return &p, nil
}
