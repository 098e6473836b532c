// FilePath: internal/repository/postgres/postgres.user.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
)

type UserRepo struct {
	PostgresBaseRepo
}

func NewUserRepository(db database.DB) *UserRepo {
	repo := &UserRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	repo.initializeSchema()
	return repo
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, role,
			account_non_expired, account_non_locked, credentials_non_expired, enabled,
			created_at, updated_at
		) VALUES (
			:id, :username, :password_hash, :role,
			:account_non_expired, :account_non_locked, :credentials_non_expired, :enabled,
			:created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("username already registered", err)
		}
		return errors.NewDatabaseError("failed to create user", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get user", err)
	}
	return user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetDB().GetContext(ctx, user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get user", err)
	}
	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			username = :username,
			password_hash = :password_hash,
			role = :role,
			account_non_expired = :account_non_expired,
			account_non_locked = :account_non_locked,
			credentials_non_expired = :credentials_non_expired,
			enabled = :enabled,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("username already registered", err)
		}
		return errors.NewDatabaseError("failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("user not found", nil)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError("user not found", nil)
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	users := []*models.User{}
	query := `SELECT * FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &users, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list users", err)
	}
	return users, nil
}

func (r *UserRepo) CountEnabledByRole(ctx context.Context, role models.Role) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND enabled = true`

	err := r.db.GetDB().GetContext(ctx, &count, query, role)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to count users", err)
	}
	return count, nil
}

func (r *UserRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			account_non_expired BOOLEAN NOT NULL DEFAULT true,
			account_non_locked BOOLEAN NOT NULL DEFAULT true,
			credentials_non_expired BOOLEAN NOT NULL DEFAULT true,
			enabled BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username)`

	_, err := r.db.GetDB().Exec(query)
	if err != nil {
		return errors.NewDatabaseError("failed to initialize users schema", err)
	}
	return nil
}
