package impl

import (
	"context"
	"log/slog"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type postService struct {
	postRepo repository.PostRepository
	logger   *slog.Logger
}

// NewPostService creates a new post service instance
func NewPostService(postRepo repository.PostRepository, logger *slog.Logger) usecase.PostUsecase {
	return &postService{
		postRepo: postRepo,
		logger:   logger,
	}
}

func (s *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func (s *postService) CreatePost(ctx context.Context, input *usecase.PostInput) (*entity.Post, error) {
	post := &entity.Post{
		Title:   input.Title,
		Content: input.Content,
		Author:  input.Author,
		Slug:    input.Slug,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.log(ctx).Error("Failed to create post", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create post")
	}

	s.log(ctx).Info("Post created", slog.Any("postID", post.ID))

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get post")
	}

	return post, nil
}

// UpdatePost overwrites all mutable fields and returns the stored post.
func (s *postService) UpdatePost(ctx context.Context, input *usecase.PostInput) (*entity.Post, error) {
	if err := s.postRepo.Update(ctx, &entity.Post{
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
		Author:  input.Author,
		Slug:    input.Slug,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to update post")
	}

	post, err := s.postRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload post")
	}

	s.log(ctx).Info("Post updated", slog.Any("postID", post.ID))

	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}
