// FilePath: internal/repository/postgres/postgres.measure.go
package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
)

type MeasureRepo struct {
	PostgresBaseRepo
}

func NewMeasureRepository(db database.DB) *MeasureRepo {
	repo := &MeasureRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	repo.initializeSchema()
	return repo
}

func (r *MeasureRepo) Create(ctx context.Context, measure *models.Measure) error {
	query := `
		INSERT INTO measures (
			id, isle_id, air_temp, gnd_temp, wind_speed, wind_direction,
			irradiance, pressure, air_humidity, gnd_humidity,
			precipitation, rain_intensity, timestamp, created_at
		) VALUES (
			:id, :isle_id, :air_temp, :gnd_temp, :wind_speed, :wind_direction,
			:irradiance, :pressure, :air_humidity, :gnd_humidity,
			:precipitation, :rain_intensity, :timestamp, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, measure)
	if err != nil {
		return errors.NewDatabaseError("failed to create measure", err)
	}
	return nil
}

func (r *MeasureRepo) Get(ctx context.Context, id string) (*models.Measure, error) {
	measure := &models.Measure{}
	query := `SELECT * FROM measures WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, measure, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("measure not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get measure", err)
	}
	return measure, nil
}

// Update overwrites the measured fields and the timestamp. The isle linkage
// and id are fixed at creation time and are not part of the statement.
func (r *MeasureRepo) Update(ctx context.Context, measure *models.Measure) error {
	query := `
		UPDATE measures SET
			air_temp = :air_temp,
			gnd_temp = :gnd_temp,
			wind_speed = :wind_speed,
			wind_direction = :wind_direction,
			irradiance = :irradiance,
			pressure = :pressure,
			air_humidity = :air_humidity,
			gnd_humidity = :gnd_humidity,
			precipitation = :precipitation,
			rain_intensity = :rain_intensity,
			timestamp = :timestamp
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, measure)
	if err != nil {
		return errors.NewDatabaseError("failed to update measure", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("measure not found", nil)
	}
	return nil
}

func (r *MeasureRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM measures WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete measure", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("measure not found", nil)
	}
	return nil
}

func (r *MeasureRepo) List(ctx context.Context, filters models.MeasureFilters, offset, limit int) ([]*models.Measure, error) {
	measures := []*models.Measure{}

	var conditions []string
	var args []interface{}
	if filters.IsleID != "" {
		args = append(args, filters.IsleID)
		conditions = append(conditions, "isle_id = $"+strconv.Itoa(len(args)))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		conditions = append(conditions, "timestamp >= $"+strconv.Itoa(len(args)))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		conditions = append(conditions, "timestamp <= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT * FROM measures`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY timestamp DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	err := r.db.GetDB().SelectContext(ctx, &measures, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list measures", err)
	}
	return measures, nil
}

func (r *MeasureRepo) ListByIsle(ctx context.Context, isleID string, offset, limit int) ([]*models.Measure, error) {
	measures := []*models.Measure{}
	query := `SELECT * FROM measures WHERE isle_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`

	err := r.db.GetDB().SelectContext(ctx, &measures, query, isleID, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list measures", err)
	}
	return measures, nil
}

func (r *MeasureRepo) initializeSchema() error {
	// No ON DELETE CASCADE: deleting an isle intentionally leaves its
	// measures behind, so the FK is not declared here.
	query := `
		CREATE TABLE IF NOT EXISTS measures (
			id TEXT PRIMARY KEY,
			isle_id TEXT NOT NULL,
			air_temp DOUBLE PRECISION NOT NULL,
			gnd_temp DOUBLE PRECISION NOT NULL,
			wind_speed DOUBLE PRECISION NOT NULL,
			wind_direction DOUBLE PRECISION NOT NULL,
			irradiance DOUBLE PRECISION NOT NULL,
			pressure DOUBLE PRECISION NOT NULL,
			air_humidity DOUBLE PRECISION NOT NULL,
			gnd_humidity DOUBLE PRECISION NOT NULL,
			precipitation DOUBLE PRECISION NOT NULL,
			rain_intensity DOUBLE PRECISION NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_measures_isle_timestamp ON measures(isle_id, timestamp DESC)`

	_, err := r.db.GetDB().Exec(query)
	if err != nil {
		return errors.NewDatabaseError("failed to initialize measures schema", err)
	}
	return nil
}
