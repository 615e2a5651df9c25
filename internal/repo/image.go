package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"growtracker/internal/model"
)

// ImageRepository is the persistence contract for image metadata. The
// bytes themselves live in the blob store; deleting metadata without the
// blob (or vice versa) is the caller's responsibility to coordinate.
type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) (*model.Image, error)
	GetByID(ctx context.Context, id string) (*model.Image, error)

	// ListForEntity returns an entity's images ordered by uploadDate
	// descending.
	ListForEntity(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Image, error)

	Delete(ctx context.Context, id string) error
}

type imageRepo struct {
	coll *mongo.Collection
}

// NewImageRepository creates the Mongo-backed image metadata repository.
func NewImageRepository(db *mongo.Database) ImageRepository {
	return &imageRepo{coll: db.Collection(collImages)}
}

func (r *imageRepo) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	res, err := r.coll.InsertOne(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("insert image metadata: %w", err)
	}
	img.ID = res.InsertedID.(primitive.ObjectID)
	return img, nil
}

func (r *imageRepo) GetByID(ctx context.Context, id string) (*model.Image, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var img model.Image
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&img); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find image %s: %w", id, err)
	}
	return &img, nil
}

func (r *imageRepo) ListForEntity(ctx context.Context, entityType model.EntityType, entityID string) ([]model.Image, error) {
	oid, err := parseID(entityID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"entityType": entityType, "entityId": oid}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list images for %s %s: %w", entityType, entityID, err)
	}
	images := []model.Image{}
	if err := cur.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return images, nil
}

func (r *imageRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
