package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/delivery/http/render"
	"blog/internal/delivery/http/response"
	domainerrors "blog/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// errorView is the page data of the generic error template.
type errorView struct {
	Status     int
	StatusText string
	Message    string
}

// HandleHTTPError is echo's HTTPErrorHandler. Requests under /api and /health
// get the JSON envelope; everything else gets an HTML page.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message := m.classify(err, c)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)

		return
	}

	if isAPIRequest(c) {
		_ = response.Error(c, status, code, message, "")

		return
	}

	if renderErr := m.renderPage(c, status, message); renderErr != nil {
		m.log(c).Error("Failed to render error page", slog.Any("error", renderErr))
		_ = c.String(status, http.StatusText(status))
	}
}

func (m *ErrorMiddleware) classify(err error, c echo.Context) (int, string, string) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnhandled(c, err)
		}

		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logUnhandled(c, err)
		}

		return httpErr.Code, "HTTP_ERROR", message
	}

	m.logUnhandled(c, err)

	// Internal details never reach the client.
	return http.StatusInternalServerError, domainerrors.ErrInternalError.ErrorCode(), "Internal server error, please try again later"
}

func (m *ErrorMiddleware) renderPage(c echo.Context, status int, message string) error {
	switch status {
	case http.StatusNotFound:
		return c.Render(status, "404", &render.Page{Title: "Page Not Found"})
	case http.StatusInternalServerError:
		return c.Render(status, "500", &render.Page{Title: "Internal Server Error"})
	}

	return c.Render(status, "error", &render.Page{
		Title: http.StatusText(status),
		Data: errorView{
			Status:     status,
			StatusText: http.StatusText(status),
			Message:    message,
		},
	})
}

func (m *ErrorMiddleware) logUnhandled(c echo.Context, err error) {
	m.log(c).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

func isAPIRequest(c echo.Context) bool {
	path := c.Request().URL.Path

	return path == "/health" || path == "/api" || strings.HasPrefix(path, "/api/")
}
