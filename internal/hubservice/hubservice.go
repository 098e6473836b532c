package hubservice

import (
	"strings"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Users    repository.UserRepository
	Isles    repository.IsleRepository
	Measures repository.MeasureRepository
	Images   repository.ImageRepository

	events *nuts.EventEmitter
}

// New creates a new HubService instance
func New(
	users repository.UserRepository,
	isles repository.IsleRepository,
	measures repository.MeasureRepository,
	images repository.ImageRepository,
) *HubService {
	return &HubService{
		Users:    users,
		Isles:    isles,
		Measures: measures,
		Images:   images,
		events:   nuts.NewEventEmitter(),
	}
}

// OnEvent registers a callback for lifecycle events. Events carry the id of
// the affected entity.
func (s *HubService) OnEvent(event string, handler func(id string)) {
	s.events.On(event, "lifecycle_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Users == nil {
		return ErrMissingRepository("users")
	}
	if s.Isles == nil {
		return ErrMissingRepository("isles")
	}
	if s.Measures == nil {
		return ErrMissingRepository("measures")
	}
	if s.Images == nil {
		return ErrMissingRepository("images")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

// requireID rejects blank or padded identifiers before they reach a query.
func requireID(id string) error {
	if id == "" || strings.TrimSpace(id) != id {
		return errors.NewInvalidIDError("malformed identifier", nil)
	}
	return nil
}
