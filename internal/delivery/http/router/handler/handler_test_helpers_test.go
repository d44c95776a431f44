package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blog/config"
	deliveryhttp "blog/internal/delivery/http"
	"blog/internal/delivery/http/render"
	"blog/internal/delivery/http/router"
	"blog/internal/delivery/http/router/handler"
	"blog/internal/domain/service"
	"blog/internal/infra/auth"
	"blog/internal/infra/persistence/sqlstore"
	"blog/internal/infra/qrcode"
	"blog/internal/testutil/dbtest"
	"blog/internal/usecase"
	"blog/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testApp is the full HTTP stack over a private in-memory database.
type testApp struct {
	e     *echo.Echo
	db    *gorm.DB
	users usecase.UserUsecase
	posts usecase.PostUsecase
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.HTTP.CSRF.TokenField = "csrf_token"
	cfg.QRCode = &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M", BaseURL: "http://blog.test"}

	return cfg
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	return newTestAppWithConfig(t, newTestConfig())
}

func newTestAppWithConfig(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	return newTestAppWithQRCode(t, cfg, qrcode.NewQRCodeService(cfg))
}

func newTestAppWithQRCode(t *testing.T, cfg *config.Config, qr service.QRCodeService) *testApp {
	t.Helper()

	db := dbtest.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := impl.NewUserService(impl.UserServiceParams{
		TxManager: sqlstore.NewTransactionManager(db),
		UserRepo:  sqlstore.NewUserRepository(db),
		Hasher:    auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:    logger,
	})
	posts := impl.NewPostService(sqlstore.NewPostRepository(db), logger)

	renderer, err := render.New(cfg)
	require.NoError(t, err)

	routes := router.NewRouter(router.RouterParams{
		PageHandler: handler.NewPageHandler(),
		UserHandler: handler.NewUserHandler(users, logger),
		PostHandler: handler.NewPostHandler(posts, qr, logger),
		APIHandler:  handler.NewAPIHandler(users, posts),
	})

	return &testApp{
		e:     deliveryhttp.NewEcho(cfg, logger, renderer, routes),
		db:    db,
		users: users,
		posts: posts,
	}
}

func (app *testApp) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func (app *testApp) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	return rec
}
