// FilePath: internal/repository/postgres/postgres.isle.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
)

type IsleRepo struct {
	PostgresBaseRepo
}

func NewIsleRepository(db database.DB) *IsleRepo {
	repo := &IsleRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	repo.initializeSchema()
	return repo
}

func (r *IsleRepo) Create(ctx context.Context, isle *models.Isle) error {
	query := `
		INSERT INTO isles (
			id, serial_number, latitude, longitude, altitude,
			is_it_working, sampling_interval, provisioning_hash,
			created_at, updated_at
		) VALUES (
			:id, :serial_number, :latitude, :longitude, :altitude,
			:is_it_working, :sampling_interval, :provisioning_hash,
			:created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, isle)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("serial number already registered", err)
		}
		return errors.NewDatabaseError("failed to create isle", err)
	}
	return nil
}

func (r *IsleRepo) Get(ctx context.Context, id string) (*models.Isle, error) {
	isle := &models.Isle{}
	query := `SELECT * FROM isles WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, isle, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("isle not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get isle", err)
	}
	return isle, nil
}

func (r *IsleRepo) GetBySerialNumber(ctx context.Context, serial string) (*models.Isle, error) {
	isle := &models.Isle{}
	query := `SELECT * FROM isles WHERE serial_number = $1`

	err := r.db.GetDB().GetContext(ctx, isle, query, serial)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("isle not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get isle", err)
	}
	return isle, nil
}

func (r *IsleRepo) Update(ctx context.Context, isle *models.Isle) error {
	query := `
		UPDATE isles SET
			serial_number = :serial_number,
			latitude = :latitude,
			longitude = :longitude,
			altitude = :altitude,
			is_it_working = :is_it_working,
			sampling_interval = :sampling_interval,
			provisioning_hash = :provisioning_hash,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, isle)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("serial number already registered", err)
		}
		return errors.NewDatabaseError("failed to update isle", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("isle not found", nil)
	}
	return nil
}

func (r *IsleRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM isles WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete isle", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("isle not found", nil)
	}
	return nil
}

func (r *IsleRepo) List(ctx context.Context, offset, limit int) ([]*models.Isle, error) {
	isles := []*models.Isle{}
	query := `SELECT * FROM isles ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &isles, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list isles", err)
	}
	return isles, nil
}

func (r *IsleRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS isles (
			id TEXT PRIMARY KEY,
			serial_number TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			altitude DOUBLE PRECISION NOT NULL,
			is_it_working BOOLEAN NOT NULL DEFAULT true,
			sampling_interval INTEGER NOT NULL DEFAULT 5,
			provisioning_hash TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_isles_serial_number ON isles(serial_number)`

	_, err := r.db.GetDB().Exec(query)
	if err != nil {
		return errors.NewDatabaseError("failed to initialize isles schema", err)
	}
	return nil
}
