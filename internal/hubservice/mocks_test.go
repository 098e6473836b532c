// FilePath: internal/hubservice/mocks_test.go
package hubservice

import (
	"context"
	"sort"

	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
)

// mockUserRepository keeps users in memory, keyed by id.
type mockUserRepository struct {
	users map[string]*models.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*models.User)}
}

func (m *mockUserRepository) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return errors.NewAlreadyExistsError("user already exists", nil)
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	result := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		clone := *u
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return paginate(result, offset, limit), nil
}

func (m *mockUserRepository) CountEnabledByRole(ctx context.Context, role models.Role) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.Role == role && u.Enabled {
			count++
		}
	}
	return count, nil
}

// mockIsleRepository keeps isles in memory, keyed by id.
type mockIsleRepository struct {
	isles map[string]*models.Isle
}

func newMockIsleRepository() *mockIsleRepository {
	return &mockIsleRepository{isles: make(map[string]*models.Isle)}
}

func (m *mockIsleRepository) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (m *mockIsleRepository) Create(ctx context.Context, isle *models.Isle) error {
	for _, i := range m.isles {
		if i.SerialNumber == isle.SerialNumber {
			return errors.NewAlreadyExistsError("isle already exists", nil)
		}
	}
	clone := *isle
	m.isles[isle.ID] = &clone
	return nil
}

func (m *mockIsleRepository) Get(ctx context.Context, id string) (*models.Isle, error) {
	if i, ok := m.isles[id]; ok {
		clone := *i
		return &clone, nil
	}
	return nil, errors.NewNotFoundError("isle not found", nil)
}

func (m *mockIsleRepository) GetBySerialNumber(ctx context.Context, serial string) (*models.Isle, error) {
	for _, i := range m.isles {
		if i.SerialNumber == serial {
			clone := *i
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("isle not found", nil)
}

func (m *mockIsleRepository) Update(ctx context.Context, isle *models.Isle) error {
	if _, ok := m.isles[isle.ID]; !ok {
		return errors.NewNotFoundError("isle not found", nil)
	}
	clone := *isle
	m.isles[isle.ID] = &clone
	return nil
}

func (m *mockIsleRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.isles[id]; !ok {
		return errors.NewNotFoundError("isle not found", nil)
	}
	delete(m.isles, id)
	return nil
}

func (m *mockIsleRepository) List(ctx context.Context, offset, limit int) ([]*models.Isle, error) {
	result := make([]*models.Isle, 0, len(m.isles))
	for _, i := range m.isles {
		clone := *i
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SerialNumber < result[j].SerialNumber })
	return paginate(result, offset, limit), nil
}

// mockMeasureRepository keeps measures in memory, keyed by id.
type mockMeasureRepository struct {
	measures map[string]*models.Measure
}

func newMockMeasureRepository() *mockMeasureRepository {
	return &mockMeasureRepository{measures: make(map[string]*models.Measure)}
}

func (m *mockMeasureRepository) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (m *mockMeasureRepository) Create(ctx context.Context, measure *models.Measure) error {
	clone := *measure
	m.measures[measure.ID] = &clone
	return nil
}

func (m *mockMeasureRepository) Get(ctx context.Context, id string) (*models.Measure, error) {
	if msr, ok := m.measures[id]; ok {
		clone := *msr
		return &clone, nil
	}
	return nil, errors.NewNotFoundError("measure not found", nil)
}

func (m *mockMeasureRepository) Update(ctx context.Context, measure *models.Measure) error {
	if _, ok := m.measures[measure.ID]; !ok {
		return errors.NewNotFoundError("measure not found", nil)
	}
	clone := *measure
	m.measures[measure.ID] = &clone
	return nil
}

func (m *mockMeasureRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.measures[id]; !ok {
		return errors.NewNotFoundError("measure not found", nil)
	}
	delete(m.measures, id)
	return nil
}

func (m *mockMeasureRepository) List(ctx context.Context, filters models.MeasureFilters, offset, limit int) ([]*models.Measure, error) {
	result := make([]*models.Measure, 0, len(m.measures))
	for _, msr := range m.measures {
		if filters.Matches(msr) {
			clone := *msr
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return paginate(result, offset, limit), nil
}

func (m *mockMeasureRepository) ListByIsle(ctx context.Context, isleID string, offset, limit int) ([]*models.Measure, error) {
	return m.List(ctx, models.MeasureFilters{IsleID: isleID}, offset, limit)
}

// mockImageRepository keeps images in memory, keyed by id.
type mockImageRepository struct {
	images map[string]*models.Image
}

func newMockImageRepository() *mockImageRepository {
	return &mockImageRepository{images: make(map[string]*models.Image)}
}

func (m *mockImageRepository) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (m *mockImageRepository) Create(ctx context.Context, image *models.Image) error {
	for _, img := range m.images {
		if img.Name == image.Name {
			return errors.NewAlreadyExistsError("image already exists", nil)
		}
	}
	clone := *image
	m.images[image.ID] = &clone
	return nil
}

func (m *mockImageRepository) Get(ctx context.Context, id string) (*models.Image, error) {
	if img, ok := m.images[id]; ok {
		clone := *img
		return &clone, nil
	}
	return nil, errors.NewNotFoundError("image not found", nil)
}

func (m *mockImageRepository) GetByName(ctx context.Context, name string) (*models.Image, error) {
	for _, img := range m.images {
		if img.Name == name {
			clone := *img
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("image not found", nil)
}

func (m *mockImageRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.images[id]; !ok {
		return errors.NewNotFoundError("image not found", nil)
	}
	delete(m.images, id)
	return nil
}

func (m *mockImageRepository) List(ctx context.Context, offset, limit int) ([]*models.Image, error) {
	result := make([]*models.Image, 0, len(m.images))
	for _, img := range m.images {
		clone := *img
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, offset, limit), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// newTestService wires a HubService over fresh in-memory repositories.
func newTestService() *HubService {
	return New(
		newMockUserRepository(),
		newMockIsleRepository(),
		newMockMeasureRepository(),
		newMockImageRepository(),
	)
}
