// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the standard operations for user persistence.
// Lookups of unknown ids or emails return errors.ErrUserNotFound from the
// domain errors package; unique email violations return errors.ErrDuplicateEmail.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. ID and timestamps are filled in on success.
	Create(ctx context.Context, user *entity.User) error

	// Update overwrites name, email and favorite color. The password hash is left untouched.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all users ordered by creation time, oldest first.
	List(ctx context.Context) ([]*entity.User, error)
}
