package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"growtracker/internal/model"
)

// Collection names.
const (
	collPlants  = "plants"
	collActions = "actions"
	collImages  = "images"
)

// InitDB connects to MongoDB, verifies the connection and ensures the
// indexes the repositories rely on.
func InitDB(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	// plant names are unique across the whole collection
	_, err := db.Collection(collPlants).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create plants.name index: %w", err)
	}

	_, err = db.Collection(collActions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "plantId", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create actions.plantId index: %w", err)
	}

	_, err = db.Collection(collImages).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create images.entity index: %w", err)
	}
	return nil
}

// parseID converts a hex id from the HTTP layer into an ObjectID. A
// malformed id can never match a document, so it maps to not-found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, model.ErrNotFound)
	}
	return oid, nil
}

// sanitizeUpdate drops fields that must never be overwritten through a
// partial update and stamps updatedAt.
func sanitizeUpdate(fields map[string]any, now time.Time) bson.M {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" || k == "id" || k == "createdAt" {
			continue
		}
		set[k] = v
	}
	set["updatedAt"] = now
	return set
}
