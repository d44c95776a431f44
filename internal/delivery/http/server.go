package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"blog/config"
	"blog/internal/delivery"
	deliverycontext "blog/internal/delivery/context"
	httpmiddleware "blog/internal/delivery/http/middleware"
	"blog/internal/delivery/http/render"
	"blog/internal/delivery/http/router"
	"blog/internal/delivery/http/validator"
	"blog/internal/delivery/middleware"
	"blog/internal/domain/lifecycle"
	"blog/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

const defaultCSRFCookieName = "_csrf"

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	Renderer     *render.Renderer
	RouterParams router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// RouteRegistrar registers routes on an echo instance.
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo)
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params.Cfg, params.Logger, params.Renderer, router.NewRouter(params.RouterParams))

	srv := &httpServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho builds the echo instance with middleware, error handling and routes.
func NewEcho(cfg *config.Config, logger *slog.Logger, renderer echo.Renderer, routes RouteRegistrar) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	// Set up middleware in correct order
	// 1. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(logger)
	echoServer.Use(requestIDMiddleware.Process)

	// 2. Logger middleware, outside Recover so a panicking request still gets an access log line
	loggerMiddleware := middleware.NewLoggerMiddleware(logger, cfg)
	echoServer.Use(loggerMiddleware.Handle)

	// 3. Recover turns panics into errors for the logger and error handler
	echoServer.Use(newRecoverMiddleware(logger))

	// 4. Request body size limit
	if cfg.HTTP.MaxRequestBodySize != "" {
		echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))
	}

	// 5. CSRF protection for the HTML forms
	if cfg.HTTP.CSRF.Enabled {
		echoServer.Use(newCSRFMiddleware(cfg.HTTP.CSRF))
	}

	errorMiddleware := httpmiddleware.NewErrorMiddleware(logger)
	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError
	echoServer.Validator = validator.New()
	echoServer.Renderer = renderer

	routes.RegisterRoutes(echoServer)

	return echoServer
}

func newRecoverMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), logger).Error("Recovered from panic",
				slog.Any("error", err),
				slog.String("stack", string(stack)),
			)

			return err
		},
	})
}

func newCSRFMiddleware(csrf config.CSRFConfig) echo.MiddlewareFunc {
	cookieName := csrf.CookieName
	if cookieName == "" {
		cookieName = defaultCSRFCookieName
	}

	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		// The JSON API is read-only and carries no cookies worth protecting.
		Skipper: func(c echo.Context) bool {
			path := c.Path()

			return path == "/health" || strings.HasPrefix(path, "/api/")
		},
		TokenLookup:    "form:" + csrf.TokenField,
		ContextKey:     render.CSRFContextKey,
		CookieName:     cookieName,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   csrf.Secure,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("host_port", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
