package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/delivery/http/render"
	"blog/internal/delivery/http/validator"
	domainerrors "blog/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// storageFailureFlash is shown when the database rejects a write for any
// reason other than a duplicate email.
const storageFailureFlash = "Error! Looks like there was a problem"

// parseID reads the :id path parameter. Anything that is not a UUID cannot
// name a record, so it is reported as not found.
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrNotFound.WrapMessage("invalid id " + c.Param("id"))
	}

	return id, nil
}

// bindAndValidate fills dst from the request body and validates it. A nil
// map with a nil error means the form is valid. Field errors come back as a
// map with a nil error; any other failure is returned as an error.
func bindAndValidate(c echo.Context, dst any) (map[string]string, error) {
	if err := c.Bind(dst); err != nil {
		return nil, errors.WithStack(err)
	}

	err := c.Validate(dst)
	if err == nil {
		return nil, nil
	}

	var formErr *validator.FormError
	if errors.As(err, &formErr) {
		return formErr.Fields, nil
	}

	return nil, errors.WithStack(err)
}

// writeFailure maps a use case error that the form page can display itself
// to a flash message and status. ok is false for errors that belong on the
// 404/500 pages.
func writeFailure(err error) (status int, flash string, ok bool) {
	switch {
	case errors.Is(err, domainerrors.ErrDuplicateEmail):
		return http.StatusConflict, domainerrors.ErrDuplicateEmail.Message(), true
	case domainerrors.IsStorageError(err):
		return http.StatusInternalServerError, storageFailureFlash, true
	}

	return 0, "", false
}

func logFailure(c echo.Context, fallback *slog.Logger, msg string, status int, err error) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), fallback)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.Any("error", err))

		return
	}
	logger.Info(msg, slog.Any("error", err))
}

func newPage(title string, form any) *render.Page {
	return &render.Page{Title: title, Form: form}
}
