package hubservice

import (
	"context"
	"time"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// MeasureService handles measure-related business logic
type MeasureService interface {
	CreateMeasure(ctx context.Context, isle *models.Isle, measure *models.Measure) error
	GetMeasure(ctx context.Context, id string) (*models.Measure, error)
	UpdateMeasure(ctx context.Context, id string, measure *models.Measure) error
	DeleteMeasure(ctx context.Context, id string) error
	ListMeasures(ctx context.Context, filters models.MeasureFilters, offset, limit int) ([]*models.Measure, error)
	ListMeasuresByIsle(ctx context.Context, isle *models.Isle, offset, limit int) ([]*models.Measure, error)
}

// CreateMeasure ingests one reading set for the given isle. Requiring a
// resolved isle rather than a bare id guarantees the linkage exists at
// creation time. The isle linkage in the payload is ignored.
func (s *HubService) CreateMeasure(ctx context.Context, isle *models.Isle, measure *models.Measure) error {
	if !isle.IsItWorking {
		return errors.NewNotPermittedError("isle is not in working mode", nil)
	}

	measure.IsleID = isle.ID
	if err := measure.Validate(); err != nil {
		return err
	}

	if measure.ID == "" {
		measure.ID = nuts.NID("msr", 12)
	}
	now := time.Now()
	if measure.Timestamp.IsZero() {
		measure.Timestamp = now
	}
	measure.CreatedAt = now

	if err := s.Measures.Create(ctx, measure); err != nil {
		return err
	}

	nuts.L.Infof("[MeasureService] Measure %s recorded for isle %s", measure.ID, isle.SerialNumber)
	s.events.Emit("measure.created", measure.ID)
	return nil
}

// GetMeasure retrieves a measure by id
func (s *HubService) GetMeasure(ctx context.Context, id string) (*models.Measure, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Measures.Get(ctx, id)
}

// UpdateMeasure overwrites all measured fields and the timestamp from the
// payload. The id and the isle linkage of the stored record always survive,
// regardless of what the payload carries. The working-mode gate applies at
// creation only.
func (s *HubService) UpdateMeasure(ctx context.Context, id string, measure *models.Measure) error {
	existing, err := s.Measures.Get(ctx, id)
	if err != nil {
		return err
	}

	measure.ID = existing.ID
	measure.IsleID = existing.IsleID
	measure.CreatedAt = existing.CreatedAt
	if measure.Timestamp.IsZero() {
		measure.Timestamp = existing.Timestamp
	}
	if err := measure.Validate(); err != nil {
		return err
	}

	nuts.L.Infof("[MeasureService] Updating measure %s", id)
	return s.Measures.Update(ctx, measure)
}

// DeleteMeasure removes a measure by id
func (s *HubService) DeleteMeasure(ctx context.Context, id string) error {
	if err := s.Measures.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Emit("measure.deleted", id)
	return nil
}

// ListMeasures retrieves a paginated, filtered list of measures
func (s *HubService) ListMeasures(ctx context.Context, filters models.MeasureFilters, offset, limit int) ([]*models.Measure, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Measures.List(ctx, filters, offset, limit)
}

// ListMeasuresByIsle retrieves the measures submitted by one isle
func (s *HubService) ListMeasuresByIsle(ctx context.Context, isle *models.Isle, offset, limit int) ([]*models.Measure, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.Measures.ListByIsle(ctx, isle.ID, offset, limit)
}
