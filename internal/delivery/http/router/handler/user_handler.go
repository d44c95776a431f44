package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/delivery/http/form"
	"blog/internal/delivery/http/render"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// usersView backs add_user.html. Name is set right after a successful create.
type usersView struct {
	Name  string
	Users []*entity.User
}

type passwordCheckView struct {
	Checked bool
	Email   string
	User    *entity.User
	Passed  bool
}

// AddUserForm shows the user form above the list of all users.
func (h *UserHandler) AddUserForm(c echo.Context) error {
	return h.renderUsers(c, http.StatusOK, newPage("Add User", &form.UserForm{}), "")
}

func (h *UserHandler) AddUser(c echo.Context) error {
	var f form.UserForm
	fieldErrs, err := bindAndValidate(c, &f)
	if err != nil {
		return err
	}

	// Passwords are never echoed back into the form.
	submitted := f
	submitted.Password, submitted.PasswordConfirm = "", ""
	page := newPage("Add User", &submitted)

	if fieldErrs != nil {
		page.Errors = fieldErrs

		return h.renderUsers(c, http.StatusUnprocessableEntity, page, "")
	}

	user, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Name:          f.Name,
		Email:         f.Email,
		FavoriteColor: f.FavoriteColor,
		Password:      f.Password,
	})
	if err != nil {
		status, flash, ok := writeFailure(err)
		if !ok {
			return err
		}
		logFailure(c, h.logger, "Failed to add user", status, err)
		page.Flash(flash)

		return h.renderUsers(c, status, page, "")
	}

	page.Form = &form.UserForm{}
	page.Flash("User Added Successfully!")

	return h.renderUsers(c, http.StatusOK, page, user.Name)
}

// UpdateUserForm shows the edit form prefilled with the stored user.
func (h *UserHandler) UpdateUserForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	page := newPage("Update User", &form.UserEditForm{
		Name:          user.Name,
		Email:         user.Email,
		FavoriteColor: user.FavoriteColor,
	})
	page.Data = user

	return c.Render(http.StatusOK, "update", page)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.uc.GetUser(ctx, id)
	if err != nil {
		return err
	}

	var f form.UserEditForm
	fieldErrs, err := bindAndValidate(c, &f)
	if err != nil {
		return err
	}

	page := newPage("Update User", &f)
	page.Data = user
	if fieldErrs != nil {
		page.Errors = fieldErrs

		return c.Render(http.StatusUnprocessableEntity, "update", page)
	}

	updated, err := h.uc.UpdateUser(ctx, &usecase.UpdateUserInput{
		ID:            id,
		Name:          f.Name,
		Email:         f.Email,
		FavoriteColor: f.FavoriteColor,
	})
	if err != nil {
		status, flash, ok := writeFailure(err)
		if !ok {
			return err
		}
		logFailure(c, h.logger, "Failed to update user", status, err)
		page.Flash(flash)

		return c.Render(status, "update", page)
	}

	page.Data = updated
	page.Flash("User Updated Successfully!")

	return c.Render(http.StatusOK, "update", page)
}

// ConfirmDelete asks before deleting. GET never deletes.
func (h *UserHandler) ConfirmDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	page := newPage("Delete User", nil)
	page.Data = user

	return c.Render(http.StatusOK, "delete", page)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	page := newPage("Add User", &form.UserForm{})

	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		if !domainerrors.IsStorageError(err) {
			return err
		}
		logFailure(c, h.logger, "Failed to delete user", http.StatusInternalServerError, err)
		page.Flash("Whoops! There was a problem deleting user, try again...")

		return h.renderUsers(c, http.StatusInternalServerError, page, "")
	}

	page.Flash("User Deleted Successfully!!")

	return h.renderUsers(c, http.StatusOK, page, "")
}

func (h *UserHandler) TestPasswordForm(c echo.Context) error {
	page := newPage("Test Password", &form.PasswordForm{})
	page.Data = passwordCheckView{}

	return c.Render(http.StatusOK, "test_pw", page)
}

// TestPassword reports whether the submitted password matches the stored
// digest of the user with the submitted email.
func (h *UserHandler) TestPassword(c echo.Context) error {
	var f form.PasswordForm
	fieldErrs, err := bindAndValidate(c, &f)
	if err != nil {
		return err
	}

	page := newPage("Test Password", &form.PasswordForm{Email: f.Email})
	page.Data = passwordCheckView{}
	if fieldErrs != nil {
		page.Errors = fieldErrs

		return c.Render(http.StatusUnprocessableEntity, "test_pw", page)
	}

	out, err := h.uc.VerifyPassword(c.Request().Context(), &usecase.VerifyPasswordInput{
		Email:    f.Email,
		Password: f.Password,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			page.Flash("No user found with that email")

			return c.Render(http.StatusNotFound, "test_pw", page)
		}

		return err
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		Debug("Password tested", slog.Any("userID", out.User.ID), slog.Bool("passed", out.Passed))

	page.Data = passwordCheckView{
		Checked: true,
		Email:   f.Email,
		User:    out.User,
		Passed:  out.Passed,
	}

	return c.Render(http.StatusOK, "test_pw", page)
}

// renderUsers renders add_user.html with the current user list.
func (h *UserHandler) renderUsers(c echo.Context, status int, page *render.Page, addedName string) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	page.Data = usersView{Name: addedName, Users: users}

	return c.Render(status, "add_user", page)
}
