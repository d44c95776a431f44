package repository

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// PostRepository persists blog posts. There is deliberately no Delete.
type PostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	Create(ctx context.Context, post *entity.Post) error
	// Update overwrites title, content, author and slug in one statement.
	Update(ctx context.Context, post *entity.Post) error
	// List returns all posts ordered by creation time, oldest first.
	List(ctx context.Context) ([]*entity.Post, error)
}
