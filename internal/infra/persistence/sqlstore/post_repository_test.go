package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/infra/persistence/sqlstore"
	"blog/internal/testutil/dbtest"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(title string) *entity.Post {
	return &entity.Post{
		Title:   title,
		Content: "Lorem ipsum",
		Author:  "Ada",
		Slug:    "first-post",
	}
}

func TestPostRepository_CreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewPostRepository(dbtest.New(t))

	post := newPost("First post")
	require.NoError(t, repo.Create(ctx, post))
	require.NotEqual(t, uuid.Nil, post.ID)

	got, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First post", got.Title)
	assert.Equal(t, "Lorem ipsum", got.Content)
	assert.Equal(t, "Ada", got.Author)
	assert.Equal(t, "first-post", got.Slug)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))
}

func TestPostRepository_FindByID_NotFound(t *testing.T) {
	repo := sqlstore.NewPostRepository(dbtest.New(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestPostRepository_UpdateKeepsIdentityAndCreation(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewPostRepository(dbtest.New(t))

	post := newPost("First post")
	require.NoError(t, repo.Create(ctx, post))

	edited := &entity.Post{ID: post.ID, Title: "Renamed", Content: "New body", Author: "Bob", Slug: "renamed"}
	require.NoError(t, repo.Update(ctx, edited))

	got, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "New body", got.Content)
	assert.Equal(t, "Bob", got.Author)
	assert.Equal(t, "renamed", got.Slug)
	assert.True(t, post.CreatedAt.Equal(got.CreatedAt))
}

func TestPostRepository_Update_NotFound(t *testing.T) {
	repo := sqlstore.NewPostRepository(dbtest.New(t))

	err := repo.Update(context.Background(), &entity.Post{ID: uuid.New(), Title: "x"})
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestPostRepository_ListOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewPostRepository(dbtest.New(t))

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	later := newPost("later")
	later.CreatedAt = base.Add(time.Hour)
	earlier := newPost("earlier")
	earlier.CreatedAt = base
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "earlier", posts[0].Title)
	assert.Equal(t, "later", posts[1].Title)
}

func TestPostRepository_DuplicateSlugsAllowed(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewPostRepository(dbtest.New(t))

	require.NoError(t, repo.Create(ctx, newPost("one")))
	require.NoError(t, repo.Create(ctx, newPost("two")))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
