// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser looks the email up and inserts inside one transaction. The
// unique index on users.email turns a lost race into ErrDuplicateEmail too.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	newUser := &entity.User{
		Name:          input.Name,
		Email:         input.Email,
		FavoriteColor: input.FavoriteColor,
		PasswordHash:  hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrDuplicateEmail
		}
		if !errors.Is(err, domainerrors.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			srv.log(ctx).Info("Rejected user with duplicate email", slog.String("email", input.Email))

			return nil, errors.WithStack(err)
		}
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.Any("userID", newUser.ID))

	return newUser, nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

// UpdateUser overwrites name, email and favorite color, then re-reads the row.
func (srv *userService) UpdateUser(ctx context.Context, input *usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := userRepo.Update(ctx, &entity.User{
			ID:            input.ID,
			Name:          input.Name,
			Email:         input.Email,
			FavoriteColor: input.FavoriteColor,
		}); err != nil {
			return err
		}

		user, err := userRepo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		if !errors.Is(err, domainerrors.ErrUserNotFound) && !errors.Is(err, domainerrors.ErrDuplicateEmail) {
			srv.log(ctx).Error("Failed to update user", slog.Any("userID", input.ID), slog.Any("error", err))
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.Any("userID", updated.ID))

	return updated, nil
}

func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id))

	return nil
}

func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// VerifyPassword checks password against the stored digest of the user with
// the given email. A mismatch is a normal outcome, not an error.
func (srv *userService) VerifyPassword(ctx context.Context, input *usecase.VerifyPasswordInput) (*usecase.VerifyPasswordOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user for password check")
	}

	passed, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password hash is unusable", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check password")
	}

	srv.log(ctx).Debug("Password checked", slog.Any("userID", user.ID), slog.Bool("passed", passed))

	return &usecase.VerifyPasswordOutput{User: user, Passed: passed}, nil
}
