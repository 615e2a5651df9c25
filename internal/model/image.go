package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntityType — the kind of entity an image documents. Only plants and
// actions carry images.
type EntityType string

const (
	EntityPlant  EntityType = "Plant"
	EntityAction EntityType = "Action"
)

func (t EntityType) Valid() bool {
	return t == EntityPlant || t == EntityAction
}

// ParseEntityType validates a raw entity type string.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", &ValidationError{Field: "entityType", Reason: "must be Plant or Action"}
	}
	return t, nil
}

// Image — metadata for a stored photo. The bytes live in the blob store
// under StorageKey; EntityType+EntityID is a polymorphic reference to the
// plant or action the photo documents.
type Image struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StorageKey  string             `bson:"storageKey" json:"storageKey"`
	Filename    string             `bson:"filename" json:"filename"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	EntityType  EntityType         `bson:"entityType" json:"entityType"`
	EntityID    primitive.ObjectID `bson:"entityId" json:"entityId"`
	UploadDate  time.Time          `bson:"uploadDate" json:"uploadDate"`
}

// ImageUpload is the validated input of an upload request.
type ImageUpload struct {
	EntityType  EntityType
	EntityID    string
	Filename    string
	ContentType string
	Size        int64
}

func (u *ImageUpload) Validate() error {
	if !u.EntityType.Valid() {
		return &ValidationError{Field: "entityType", Reason: "must be Plant or Action"}
	}
	if u.EntityID == "" {
		return &ValidationError{Field: "entityId", Reason: "required"}
	}
	if u.Filename == "" {
		return &ValidationError{Field: "file", Reason: "required"}
	}
	return nil
}
