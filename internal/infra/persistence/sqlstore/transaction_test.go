package sqlstore_test

import (
	"context"
	"testing"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/infra/persistence/sqlstore"
	"blog/internal/testutil/dbtest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	tm := sqlstore.NewTransactionManager(db)

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(ctx, newUser("Ada", "ada@x.com"))
	})
	require.NoError(t, err)

	_, err = sqlstore.NewUserRepository(db).FindByEmail(ctx, "ada@x.com")
	assert.NoError(t, err)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	tm := sqlstore.NewTransactionManager(db)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.PostRepo().Create(ctx, &entity.Post{Title: "t", Content: "c", Author: "a", Slug: "s"}); err != nil {
			return err
		}

		return boom
	})
	assert.True(t, errors.Is(err, boom))

	posts, err := sqlstore.NewPostRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	tm := sqlstore.NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.UserRepo().Create(ctx, newUser("Ada", "ada@x.com"))
			panic("boom")
		})
	})

	_, err := sqlstore.NewUserRepository(db).FindByEmail(ctx, "ada@x.com")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestTransactionManager_BeginFailure(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	called := false
	err = sqlstore.NewTransactionManager(db).Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, errors.Is(err, domainerrors.ErrTransactionFailed))
	assert.True(t, domainerrors.IsStorageError(err))
}
