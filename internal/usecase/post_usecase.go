package usecase

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// PostInput carries a validated post form. ID is ignored on create.
type PostInput struct {
	ID      uuid.UUID
	Title   string
	Content string
	Author  string
	Slug    string
}

// PostUsecase defines blog post operations. Posts cannot be deleted.
type PostUsecase interface {
	CreatePost(ctx context.Context, input *PostInput) (*entity.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	UpdatePost(ctx context.Context, input *PostInput) (*entity.Post, error)
	ListPosts(ctx context.Context) ([]*entity.Post, error)
}
