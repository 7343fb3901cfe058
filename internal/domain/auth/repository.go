package auth

import (
	"context"

	"quarryledger/internal/core/id"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error

	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Exists reports whether an email is already registered.
	Exists(ctx context.Context, email string) (bool, error)

	// List returns every user profile.
	List(ctx context.Context) ([]*User, error)
}
