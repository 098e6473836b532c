package hubservice

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// IsleService handles isle-related business logic
type IsleService interface {
	CreateIsle(ctx context.Context, isle *models.Isle, provisionPassword string) error
	GetIsle(ctx context.Context, id string) (*models.Isle, error)
	GetIsleBySerialNumber(ctx context.Context, serial string) (*models.Isle, error)
	UpdateIsle(ctx context.Context, id string, isle *models.Isle) error
	ToggleWorkingMode(ctx context.Context, id string) (bool, error)
	DeleteIsle(ctx context.Context, id string) error
	ListIsles(ctx context.Context, offset, limit int) ([]*models.Isle, error)
}

// CreateIsle registers a new device. The provisioning password is the secret
// the device later presents during isle-user self-registration; it is hashed
// before storage and never logged.
func (s *HubService) CreateIsle(ctx context.Context, isle *models.Isle, provisionPassword string) error {
	if provisionPassword == "" {
		return errors.NewValidationError("provisioning password is required", nil)
	}

	// New devices always start in working mode.
	isle.IsItWorking = true
	if isle.SamplingInterval == 0 {
		isle.SamplingInterval = models.DefaultSamplingInterval
	}
	if err := isle.Validate(); err != nil {
		return err
	}

	// Fast-path duplicate check; the unique index on serial_number closes
	// the race window between this lookup and the insert.
	if _, err := s.Isles.GetBySerialNumber(ctx, isle.SerialNumber); err == nil {
		return errors.NewAlreadyExistsError("serial number already registered", nil)
	} else if !errors.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(provisionPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewInternalError("failed to hash provisioning password", err)
	}
	isle.ProvisioningHash = string(hash)

	if isle.ID == "" {
		isle.ID = nuts.NID("isl", 12)
	}
	now := time.Now()
	isle.CreatedAt = now
	isle.UpdatedAt = now

	if err := s.Isles.Create(ctx, isle); err != nil {
		return err
	}

	nuts.L.Infof("[IsleService] Registered isle %s (%s)", isle.SerialNumber, isle.ID)
	s.events.Emit("isle.created", isle.ID)
	return nil
}

// GetIsle retrieves an isle by id
func (s *HubService) GetIsle(ctx context.Context, id string) (*models.Isle, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Isles.Get(ctx, id)
}

// GetIsleBySerialNumber retrieves an isle by serial number
func (s *HubService) GetIsleBySerialNumber(ctx context.Context, serial string) (*models.Isle, error) {
	return s.Isles.GetBySerialNumber(ctx, serial)
}

// UpdateIsle fully replaces the isle record at the given id. The new serial
// number is deliberately not re-checked against other isles here; the unique
// index remains the backstop for that observed behavior.
func (s *HubService) UpdateIsle(ctx context.Context, id string, isle *models.Isle) error {
	existing, err := s.Isles.Get(ctx, id)
	if err != nil {
		return err
	}

	isle.ID = existing.ID
	isle.ProvisioningHash = existing.ProvisioningHash
	isle.CreatedAt = existing.CreatedAt
	if isle.SamplingInterval == 0 {
		isle.SamplingInterval = models.DefaultSamplingInterval
	}
	if err := isle.Validate(); err != nil {
		return err
	}
	isle.UpdatedAt = time.Now()

	nuts.L.Infof("[IsleService] Updating isle %s", isle.ID)
	return s.Isles.Update(ctx, isle)
}

// ToggleWorkingMode flips the working gate of a device and returns the new
// value. Only the gate changes; the rest of the record is untouched.
func (s *HubService) ToggleWorkingMode(ctx context.Context, id string) (bool, error) {
	isle, err := s.Isles.Get(ctx, id)
	if err != nil {
		return false, err
	}

	isle.IsItWorking = !isle.IsItWorking
	isle.UpdatedAt = time.Now()
	if err := s.Isles.Update(ctx, isle); err != nil {
		return false, err
	}

	nuts.L.Infof("[IsleService] Isle %s working mode now %t", id, isle.IsItWorking)
	s.events.Emit("isle.toggled", id)
	return isle.IsItWorking, nil
}

// DeleteIsle removes the device record. Measures already submitted by the
// device are intentionally left in place, and the isle-linked user account
// survives as well; deletion does not cascade.
func (s *HubService) DeleteIsle(ctx context.Context, id string) error {
	isle, err := s.Isles.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Isles.Delete(ctx, id); err != nil {
		return err
	}

	nuts.L.Infof("[IsleService] Deleted isle %s (%s), existing measures retained", isle.SerialNumber, id)
	s.events.Emit("isle.deleted", id)
	return nil
}

// ListIsles retrieves a paginated list of isles
func (s *HubService) ListIsles(ctx context.Context, offset, limit int) ([]*models.Isle, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Isles.List(ctx, offset, limit)
}
