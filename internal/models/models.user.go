// FilePath: internal/models/models.user.go
package models

import "time"

// Role is the access level carried by a user account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleIsle  Role = "ISLE"
	RoleSat   Role = "SAT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleIsle, RoleSat:
		return true
	}
	return false
}

// User is the identity principal for authentication. The password hash is
// system-only: it never leaves the service through JSON or role-filtered reads.
type User struct {
	ID                    string    `json:"id" db:"id" readxs:"*"`
	Username              string    `json:"username" db:"username" readxs:"*"`
	PasswordHash          string    `json:"-" db:"password_hash" readxs:"system" writexs:"system"`
	Role                  Role      `json:"role" db:"role" readxs:"*"`
	AccountNonExpired     bool      `json:"account_non_expired" db:"account_non_expired" readxs:"*"`
	AccountNonLocked      bool      `json:"account_non_locked" db:"account_non_locked" readxs:"*"`
	CredentialsNonExpired bool      `json:"credentials_non_expired" db:"credentials_non_expired" readxs:"*"`
	Enabled               bool      `json:"enabled" db:"enabled" readxs:"*"`
	CreatedAt             time.Time `json:"created_at" db:"created_at" readxs:"*"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at" readxs:"*"`
}

// Authorities maps a user record to its authorization claims.
func Authorities(u *User) []string {
	if u == nil {
		return nil
	}
	return []string{string(u.Role)}
}

// Usable reports whether the account may authenticate at all.
func (u *User) Usable() bool {
	return u.Enabled && u.AccountNonExpired && u.AccountNonLocked && u.CredentialsNonExpired
}
