// FilePath: internal/repository/repository.go
package repository

import (
	"context"

	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/models"
)

// UserRepository defines the interface for credential-store operations
type UserRepository interface {
	database.Repository
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
	CountEnabledByRole(ctx context.Context, role models.Role) (int, error)
}

// IsleRepository defines the interface for isle data operations
type IsleRepository interface {
	database.Repository
	Create(ctx context.Context, isle *models.Isle) error
	Get(ctx context.Context, id string) (*models.Isle, error)
	GetBySerialNumber(ctx context.Context, serial string) (*models.Isle, error)
	Update(ctx context.Context, isle *models.Isle) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Isle, error)
}

// MeasureRepository defines the interface for measure data operations
type MeasureRepository interface {
	database.Repository
	Create(ctx context.Context, measure *models.Measure) error
	Get(ctx context.Context, id string) (*models.Measure, error)
	Update(ctx context.Context, measure *models.Measure) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters models.MeasureFilters, offset, limit int) ([]*models.Measure, error)
	ListByIsle(ctx context.Context, isleID string, offset, limit int) ([]*models.Measure, error)
}

// ImageRepository defines the interface for image blob operations
type ImageRepository interface {
	database.Repository
	Create(ctx context.Context, image *models.Image) error
	Get(ctx context.Context, id string) (*models.Image, error)
	GetByName(ctx context.Context, name string) (*models.Image, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Image, error)
}
