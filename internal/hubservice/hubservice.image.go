package hubservice

import (
	"context"
	"time"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ImageService handles image blob business logic
type ImageService interface {
	CreateImage(ctx context.Context, image *models.Image) error
	GetImage(ctx context.Context, id string) (*models.Image, error)
	GetImageByName(ctx context.Context, name string) (*models.Image, error)
	DeleteImage(ctx context.Context, id string) error
	ListImages(ctx context.Context, offset, limit int) ([]*models.Image, error)
}

// CreateImage stores a named blob. Names are unique across all images.
func (s *HubService) CreateImage(ctx context.Context, image *models.Image) error {
	if image.Name == "" {
		return errors.NewValidationError("image name is required", nil)
	}
	if len(image.Data) == 0 {
		return errors.NewValidationError("image data is required", nil)
	}

	if _, err := s.Images.GetByName(ctx, image.Name); err == nil {
		return errors.NewAlreadyExistsError("image name already exists", nil)
	} else if !errors.IsNotFound(err) {
		return err
	}

	if image.ID == "" {
		image.ID = nuts.NID("img", 12)
	}
	now := time.Now()
	if image.Timestamp.IsZero() {
		image.Timestamp = now
	}
	image.CreatedAt = now
	image.Size = int64(len(image.Data))

	if err := s.Images.Create(ctx, image); err != nil {
		return err
	}

	nuts.L.Infof("[ImageService] Stored image %s (%s, %d bytes)", image.Name, image.ID, image.Size)
	s.events.Emit("image.created", image.ID)
	return nil
}

// GetImage retrieves an image by id, blob included
func (s *HubService) GetImage(ctx context.Context, id string) (*models.Image, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Images.Get(ctx, id)
}

// GetImageByName retrieves an image by its unique name
func (s *HubService) GetImageByName(ctx context.Context, name string) (*models.Image, error) {
	return s.Images.GetByName(ctx, name)
}

// DeleteImage removes an image by id
func (s *HubService) DeleteImage(ctx context.Context, id string) error {
	if err := s.Images.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Emit("image.deleted", id)
	return nil
}

// ListImages retrieves paginated image metadata
func (s *HubService) ListImages(ctx context.Context, offset, limit int) ([]*models.Image, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Images.List(ctx, offset, limit)
}
