// Package auth_repo provides PostgreSQL implementations for auth
// repositories.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/domain/auth"
	"quarryledger/internal/infrastructure/storage/postgres"
)

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	tm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(tm *postgres.TxManager) *UserRepo {
	return &UserRepo{tm: tm}
}

const userColumns = `id, name, email, password_hash, role, avatar,
	is_active, last_login_at, failed_login_attempts, locked_until,
	created_at, updated_at`

// Create inserts a new user profile.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, role, avatar,
			is_active, last_login_at, failed_login_attempts, locked_until,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.tm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Avatar,
		user.IsActive, user.LastLoginAt, user.FailedLoginAttempts, user.LockedUntil,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update overwrites a user profile.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	query := `
		UPDATE users SET
			name = $2, email = $3, password_hash = $4, role = $5, avatar = $6,
			is_active = $7, last_login_at = $8, failed_login_attempts = $9,
			locked_until = $10, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Avatar,
		user.IsActive, user.LastLoginAt, user.FailedLoginAttempts, user.LockedUntil,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return r.scanOne(ctx, query, userID.String(), userID)
}

// GetByEmail retrieves a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)
	return r.scanOne(ctx, query, email, email)
}

// Exists reports whether a profile with the email already exists.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	var exists int
	err := r.tm.GetQuerier(ctx).
		QueryRow(ctx, "SELECT 1 FROM users WHERE email = $1 LIMIT 1", email).
		Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return true, nil
}

// List returns every profile ordered by name.
func (r *UserRepo) List(ctx context.Context) ([]*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY name", userColumns)

	rows, err := r.tm.GetQuerier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanOne(ctx context.Context, query, key string, arg any) (*auth.User, error) {
	row := r.tm.GetQuerier(ctx).QueryRow(ctx, query, arg)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("user", key)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var user auth.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Avatar,
		&user.IsActive, &user.LastLoginAt, &user.FailedLoginAttempts, &user.LockedUntil,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
