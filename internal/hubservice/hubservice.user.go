package hubservice

import (
	"context"
	"time"

	"github.com/itsatony/struccy"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// CreateUserInput carries the fields for admin-driven account creation.
// IsAdmin wins over IsSat when both are set.
type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
	IsSat    bool   `json:"is_sat"`
}

// IsleUserInput carries the isle self-registration credentials. The password
// must match the provisioning secret stored on the isle record.
type IsleUserInput struct {
	SerialNumber string `json:"serial_number"`
	Password     string `json:"password"`
	NewPassword  string `json:"new_password,omitempty"`
}

// UpdateUserInput carries the self-service profile update fields. Empty
// fields are left unchanged.
type UpdateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUser creates a new account with the resolved role. The password is
// hashed before storage and never logged.
func (s *HubService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Username == "" {
		return nil, errors.NewValidationError("username is required", nil)
	}
	if input.Password == "" {
		return nil, errors.NewValidationError("password is required", nil)
	}

	// Fast-path duplicate check; the unique index on username is the backstop.
	if _, err := s.Users.GetByUsername(ctx, input.Username); err == nil {
		return nil, errors.NewAlreadyExistsError("username already registered", nil)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	role := models.RoleUser
	if input.IsAdmin {
		role = models.RoleAdmin
	} else if input.IsSat {
		role = models.RoleSat
	}

	user, err := newUser(input.Username, input.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Created %s account %s (%s)", role, user.Username, user.ID)
	s.events.Emit("user.created", user.ID)
	return s.filterUser(ctx, user)
}

// RegisterIsleUser creates the ISLE-role account tied to a device. The
// account name is the isle's serial number, so at most one such pairing can
// exist. The supplied password is checked against the isle's provisioning
// secret before anything is created.
func (s *HubService) RegisterIsleUser(ctx context.Context, input IsleUserInput) (*models.User, error) {
	isle, err := s.Isles.GetBySerialNumber(ctx, input.SerialNumber)
	if err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByUsername(ctx, input.SerialNumber); err == nil {
		return nil, errors.NewAlreadyExistsError("isle account already registered", nil)
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(isle.ProvisioningHash), []byte(input.Password)); err != nil {
		return nil, errors.NewAuthError("isle credentials mismatch", nil)
	}

	user, err := newUser(isle.SerialNumber, input.Password, models.RoleIsle)
	if err != nil {
		return nil, err
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Registered isle account %s", user.Username)
	s.events.Emit("user.created", user.ID)
	return s.filterUser(ctx, user)
}

// UpdateIsleUser changes the password of the isle-linked account after
// re-validating the serial/secret pairing.
func (s *HubService) UpdateIsleUser(ctx context.Context, input IsleUserInput) (*models.User, error) {
	isle, err := s.Isles.GetBySerialNumber(ctx, input.SerialNumber)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(isle.ProvisioningHash), []byte(input.Password)); err != nil {
		return nil, errors.NewAuthError("isle credentials mismatch", nil)
	}
	if input.NewPassword == "" {
		return nil, errors.NewValidationError("new password is required", nil)
	}

	user, err := s.Users.GetByUsername(ctx, input.SerialNumber)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Updated isle account %s", user.Username)
	return s.filterUser(ctx, user)
}

// UpdateContextUser updates the authenticated principal's own username and
// password, never an arbitrary account.
func (s *HubService) UpdateContextUser(ctx context.Context, input UpdateUserInput) (*models.User, error) {
	principal := PrincipalFromContext(ctx)
	if principal == nil {
		return nil, errors.NewAuthError("no authenticated principal", nil)
	}

	user, err := s.Users.Get(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" && input.Username != user.Username {
		if other, err := s.Users.GetByUsername(ctx, input.Username); err == nil && other.ID != user.ID {
			return nil, errors.NewAlreadyExistsError("username already registered", nil)
		} else if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		user.Username = input.Username
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Account %s updated its own profile", user.ID)
	return s.filterUser(ctx, user)
}

// GetUser retrieves a user with role-based field filtering
func (s *HubService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.filterUser(ctx, user)
}

// ListUsers retrieves a paginated list of users with role-based filtering
func (s *HubService) ListUsers(ctx context.Context, offset, limit int) ([]*models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.Users.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.User, 0, len(users))
	for _, user := range users {
		f, err := s.filterUser(ctx, user)
		if err != nil {
			nuts.L.Warnf("[UserService] Failed to filter user %s: %v", user.ID, err)
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, nil
}

// LoadUserByUsername resolves a principal for authentication. The record is
// returned unfiltered; it never leaves the service through this path.
func (s *HubService) LoadUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.Users.GetByUsername(ctx, username)
}

// Authenticate checks login credentials and returns the account on success.
func (s *HubService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewAuthError("bad credentials", nil)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewAuthError("bad credentials", nil)
	}
	if !user.Usable() {
		return nil, errors.NewAuthError("account is disabled", nil)
	}
	return user, nil
}

// ToggleRoleByID flips an account between the ADMIN and USER roles. The flip
// is refused when it would demote the last remaining enabled admin. ISLE and
// SAT accounts are device/system identities and keep their role for life.
func (s *HubService) ToggleRoleByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case models.RoleAdmin:
		if err := s.guardLastAdmin(ctx, user); err != nil {
			return nil, err
		}
		user.Role = models.RoleUser
	case models.RoleUser:
		user.Role = models.RoleAdmin
	default:
		return nil, errors.NewNotPermittedError("role toggle applies to admin and user accounts only", nil)
	}

	user.UpdatedAt = time.Now()
	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Account %s role now %s", user.ID, user.Role)
	s.events.Emit("user.role_toggled", user.ID)
	return s.filterUser(ctx, user)
}

// ToggleIsEnable flips the enabled flag of an account. Disabling the last
// remaining enabled admin is refused.
func (s *HubService) ToggleIsEnable(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Enabled && user.Role == models.RoleAdmin {
		if err := s.guardLastAdmin(ctx, user); err != nil {
			return nil, err
		}
	}

	user.Enabled = !user.Enabled
	user.UpdatedAt = time.Now()
	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Account %s enabled now %t", user.ID, user.Enabled)
	s.events.Emit("user.enable_toggled", user.ID)
	return s.filterUser(ctx, user)
}

// DeleteUser removes an account. Tokens already issued for it keep their
// signature-level validity but stop resolving to a principal, so requests
// carrying them fail at authentication.
func (s *HubService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}

	nuts.L.Infof("[UserService] Deleted account %s (%s)", user.Username, id)
	s.events.Emit("user.deleted", id)
	return nil
}

// Helper functions

func newUser(username, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}
	now := time.Now()
	return &models.User{
		ID:                    nuts.NID("usr", 12),
		Username:              username,
		PasswordHash:          string(hash),
		Role:                  role,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Enabled:               true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// guardLastAdmin refuses an operation that would leave the system without an
// enabled admin account.
func (s *HubService) guardLastAdmin(ctx context.Context, target *models.User) error {
	count, err := s.Users.CountEnabledByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count <= 1 && target.Enabled {
		return errors.NewNotPermittedError("cannot remove the last enabled admin account", nil)
	}
	return nil
}

// filterUser applies role-scoped field visibility to a user record before it
// leaves the service. The password hash is tagged system-only and never
// survives filtering.
func (s *HubService) filterUser(ctx context.Context, user *models.User) (*models.User, error) {
	roles := GetUserRoles(ctx)

	filteredMap, err := struccy.StructToMapFieldsWithReadXS(user, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter user fields", err)
	}
	filtered := &models.User{}
	if _, err := struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles); err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to user struct", err)
	}
	return filtered, nil
}
