// FilePath: internal/repository/postgres/postgres.image.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
)

type ImageRepo struct {
	PostgresBaseRepo
}

func NewImageRepository(db database.DB) *ImageRepo {
	repo := &ImageRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	repo.initializeSchema()
	return repo
}

func (r *ImageRepo) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (
			id, name, data, mime_type, size, timestamp, created_at
		) VALUES (
			:id, :name, :data, :mime_type, :size, :timestamp, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, image)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("image name already exists", err)
		}
		return errors.NewDatabaseError("failed to create image", err)
	}
	return nil
}

func (r *ImageRepo) Get(ctx context.Context, id string) (*models.Image, error) {
	image := &models.Image{}
	query := `SELECT * FROM images WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, image, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("image not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get image", err)
	}
	return image, nil
}

func (r *ImageRepo) GetByName(ctx context.Context, name string) (*models.Image, error) {
	image := &models.Image{}
	query := `SELECT * FROM images WHERE name = $1`

	err := r.db.GetDB().GetContext(ctx, image, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("image not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get image", err)
	}
	return image, nil
}

func (r *ImageRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM images WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete image", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("image not found", nil)
	}
	return nil
}

// List returns image metadata only; the blob payload stays in the store
// until a single image is fetched.
func (r *ImageRepo) List(ctx context.Context, offset, limit int) ([]*models.Image, error) {
	images := []*models.Image{}
	query := `
		SELECT id, name, mime_type, size, timestamp, created_at
		FROM images ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &images, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list images", err)
	}
	return images, nil
}

func (r *ImageRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS images (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			data BYTEA NOT NULL,
			mime_type TEXT NOT NULL,
			size BIGINT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_images_name ON images(name)`

	_, err := r.db.GetDB().Exec(query)
	if err != nil {
		return errors.NewDatabaseError("failed to initialize images schema", err)
	}
	return nil
}
