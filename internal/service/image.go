package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"growtracker/internal/model"
	"growtracker/internal/repo"
	"growtracker/internal/storage"
)

// ImageService coordinates image metadata with the blob store. An image
// only counts as created/deleted when both sides agree; partial failures
// are compensated or surfaced, never swallowed.
type ImageService struct {
	images     repo.ImageRepository
	actions    repo.ActionRepository
	store      storage.Store
	presignTTL time.Duration
	logger     *zap.SugaredLogger
}

func NewImageService(
	images repo.ImageRepository,
	actions repo.ActionRepository,
	store storage.Store,
	presignTTL time.Duration,
	logger *zap.SugaredLogger,
) *ImageService {
	return &ImageService{
		images:     images,
		actions:    actions,
		store:      store,
		presignTTL: presignTTL,
		logger:     logger,
	}
}

// ImageWithURL is image metadata paired with a time-limited access URL.
type ImageWithURL struct {
	model.Image
	URL string `json:"url,omitempty"`
}

// UploadInput carries one multipart upload.
type UploadInput struct {
	EntityType  model.EntityType
	EntityID    string
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Upload writes the blob first, then persists metadata. If the metadata
// insert fails the blob is deleted again so no orphan is left behind.
func (s *ImageService) Upload(ctx context.Context, in UploadInput) (*ImageWithURL, error) {
	meta := model.ImageUpload{
		EntityType:  in.EntityType,
		EntityID:    in.EntityID,
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Size:        in.Size,
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	entityOID, err := primitive.ObjectIDFromHex(in.EntityID)
	if err != nil {
		return nil, &model.ValidationError{Field: "entityId", Reason: "malformed id"}
	}

	key := storage.GenerateKey(in.EntityType, in.EntityID, in.Filename)
	if err := s.store.Put(ctx, key, in.Content, in.Size, in.ContentType); err != nil {
		return nil, err
	}

	img := &model.Image{
		StorageKey:  key,
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Size:        in.Size,
		EntityType:  in.EntityType,
		EntityID:    entityOID,
		UploadDate:  time.Now().UTC(),
	}
	img, err = s.images.Create(ctx, img)
	if err != nil {
		// compensate: the blob must not outlive the failed metadata write
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("save image metadata: %w (orphaned blob %s: %v)", err, key, delErr)
		}
		return nil, err
	}

	// imageIds on the action is a denormalized convenience; listing by
	// entity works without it, so a failed ref update is only logged
	if in.EntityType == model.EntityAction {
		if refErr := s.actions.AddImageRef(ctx, in.EntityID, img.ID.Hex()); refErr != nil {
			s.logger.Warnw("failed to add image ref to action",
				"action_id", in.EntityID, "image_id", img.ID.Hex(), "error", refErr)
		}
	}

	url, urlErr := s.store.AccessURL(ctx, key, s.presignTTL)
	if urlErr != nil {
		s.logger.Warnw("failed to presign freshly uploaded image", "key", key, "error", urlErr)
	}
	return &ImageWithURL{Image: *img, URL: url}, nil
}

// Get returns metadata plus access URL for one image.
func (s *ImageService) Get(ctx context.Context, id string) (*ImageWithURL, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := s.store.AccessURL(ctx, img.StorageKey, s.presignTTL)
	if err != nil {
		return nil, err
	}
	return &ImageWithURL{Image: *img, URL: url}, nil
}

// ListForEntity returns an entity's images with access URLs. A presign
// failure on one image does not fail the whole listing.
func (s *ImageService) ListForEntity(ctx context.Context, entityType model.EntityType, entityID string) ([]ImageWithURL, error) {
	if !entityType.Valid() {
		return nil, &model.ValidationError{Field: "entityType", Reason: "must be Plant or Action"}
	}
	images, err := s.images.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]ImageWithURL, 0, len(images))
	for _, img := range images {
		url, urlErr := s.store.AccessURL(ctx, img.StorageKey, s.presignTTL)
		if urlErr != nil {
			s.logger.Warnw("failed to presign image", "image_id", img.ID.Hex(), "key", img.StorageKey, "error", urlErr)
		}
		out = append(out, ImageWithURL{Image: img, URL: url})
	}
	return out, nil
}

// Delete removes blob and metadata as one logical deletion: blob first,
// metadata only after the blob delete succeeded.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, img.StorageKey); err != nil {
		return fmt.Errorf("delete blob for image %s: %w", id, err)
	}
	if err := s.images.Delete(ctx, id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}

	if img.EntityType == model.EntityAction {
		if refErr := s.actions.RemoveImageRef(ctx, img.EntityID.Hex(), id); refErr != nil && !errors.Is(refErr, model.ErrNotFound) {
			s.logger.Warnw("failed to remove image ref from action",
				"action_id", img.EntityID.Hex(), "image_id", id, "error", refErr)
		}
	}
	return nil
}

// DeleteForEntity removes every image of an entity, blobs included. Used
// by the cascade deletes of plants and actions.
func (s *ImageService) DeleteForEntity(ctx context.Context, entityType model.EntityType, entityID string) error {
	images, err := s.images.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	for _, img := range images {
		if err := s.Delete(ctx, img.ID.Hex()); err != nil && !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("cascade delete image %s: %w", img.ID.Hex(), err)
		}
	}
	return nil
}
