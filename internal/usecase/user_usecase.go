// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateUserInput carries an already validated user form.
type CreateUserInput struct {
	Name          string
	Email         string
	FavoriteColor string
	Password      string
}

// UpdateUserInput overwrites every editable user field. Passwords are not editable.
type UpdateUserInput struct {
	ID            uuid.UUID
	Name          string
	Email         string
	FavoriteColor string
}

// VerifyPasswordInput is the password test form.
type VerifyPasswordInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// VerifyPasswordOutput reports the checked user and whether the password matched.
type VerifyPasswordOutput struct {
	User   *entity.User
	Passed bool
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// CreateUser hashes the password and stores the user. An email that is
	// already taken yields errors.ErrDuplicateEmail and no new row.
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]*entity.User, error)
	VerifyPassword(ctx context.Context, input *VerifyPasswordInput) (*VerifyPasswordOutput, error)
}
