package impl

import (
	"context"
	"testing"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	mockRepo "blog/internal/mocks/repository"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestPostService(t *testing.T) (usecase.PostUsecase, *mockRepo.MockPostRepository) {
	postRepo := mockRepo.NewMockPostRepository(t)

	return NewPostService(postRepo, newDiscardLogger()), postRepo
}

func TestPostService_CreatePost(t *testing.T) {
	service, postRepo := createTestPostService(t)

	ctx := context.Background()
	input := &usecase.PostInput{
		ID:      uuid.New(), // ignored on create
		Title:   "Hello",
		Content: "First post",
		Author:  "Ada",
		Slug:    "hello",
	}

	postRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(p *entity.Post) bool {
			return p.ID == uuid.Nil && p.Title == "Hello" && p.Slug == "hello"
		})).
		Run(func(ctx context.Context, post *entity.Post) {
			post.ID = uuid.New()
		}).
		Return(nil)

	post, err := service.CreatePost(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.NotEqual(t, input.ID, post.ID)
	assert.Equal(t, "First post", post.Content)
	assert.Equal(t, "Ada", post.Author)
}

func TestPostService_CreatePost_StorageFailure(t *testing.T) {
	service, postRepo := createTestPostService(t)

	ctx := context.Background()
	postRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Post")).
		Return(domainerrors.NewDatabaseExecuteError(errors.New("database is locked"), "insert post"))

	post, err := service.CreatePost(ctx, &usecase.PostInput{Title: "t", Content: "c", Author: "a", Slug: "s"})

	require.Error(t, err)
	assert.Nil(t, post)
	assert.True(t, domainerrors.IsStorageError(err))
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	service, postRepo := createTestPostService(t)

	ctx := context.Background()
	id := uuid.New()
	postRepo.EXPECT().FindByID(ctx, id).Return(nil, domainerrors.ErrPostNotFound)

	post, err := service.GetPost(ctx, id)

	require.Error(t, err)
	assert.Nil(t, post)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestPostService_UpdatePost(t *testing.T) {
	service, postRepo := createTestPostService(t)

	ctx := context.Background()
	id := uuid.New()
	input := &usecase.PostInput{ID: id, Title: "Edited", Content: "Body", Author: "Grace", Slug: "edited"}

	postRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(p *entity.Post) bool {
			return p.ID == id && p.Title == "Edited" && p.Author == "Grace"
		})).
		Return(nil)
	postRepo.EXPECT().FindByID(ctx, id).Return(&entity.Post{
		ID:      id,
		Title:   "Edited",
		Content: "Body",
		Author:  "Grace",
		Slug:    "edited",
	}, nil)

	post, err := service.UpdatePost(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, id, post.ID)
	assert.Equal(t, "Edited", post.Title)
	assert.Equal(t, "edited", post.Slug)
}

func TestPostService_UpdatePost_NotFound(t *testing.T) {
	service, postRepo := createTestPostService(t)

	ctx := context.Background()
	postRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Post")).
		Return(domainerrors.ErrPostNotFound)

	post, err := service.UpdatePost(ctx, &usecase.PostInput{ID: uuid.New(), Title: "x"})

	require.Error(t, err)
	assert.Nil(t, post)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestPostService_ListPosts(t *testing.T) {
	service, postRepo := createTestPostService(t)

	ctx := context.Background()
	posts := []*entity.Post{{ID: uuid.New(), Title: "one"}, {ID: uuid.New(), Title: "two"}}
	postRepo.EXPECT().List(ctx).Return(posts, nil)

	got, err := service.ListPosts(ctx)

	require.NoError(t, err)
	assert.Equal(t, posts, got)
}
