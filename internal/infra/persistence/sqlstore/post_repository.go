package sqlstore

import (
	"context"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{
		db: db,
	}
}

func (repo *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&postM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post by id")
	}

	return toPostDomain(&postM), nil
}

func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate post id")
		}
		post.ID = id
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now()
	}
	post.UpdatedAt = post.CreatedAt

	if err := repo.db.WithContext(ctx).Create(fromPostDomain(post)).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required post information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	return nil
}

// Update overwrites every mutable field; id and created_at are never touched.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	updatedAt := now()

	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"author":     post.Author,
			"slug":       post.Slug,
			"updated_at": updatedAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}

	post.UpdatedAt = updatedAt

	return nil
}

// List returns every post ordered by date posted, oldest first.
func (repo *postRepository) List(ctx context.Context) ([]*entity.Post, error) {
	var postModels []*model.PostModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&postModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list posts")
	}

	posts := make([]*entity.Post, 0, len(postModels))
	for _, postM := range postModels {
		posts = append(posts, toPostDomain(postM))
	}

	return posts, nil
}

func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		Author:    data.Author,
		Slug:      data.Slug,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:        data.ID,
		Title:     data.Title,
		Content:   data.Content,
		Author:    data.Author,
		Slug:      data.Slug,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
