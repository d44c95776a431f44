// Package sqlstore is the gorm-backed persistence layer. It runs on
// PostgreSQL (through go-lib) or on an embedded SQLite file.
package sqlstore

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"blog/config"
	"blog/internal/domain/lifecycle"
	"blog/internal/errors"
	"blog/internal/infra/persistence/migrations"

	"github.com/glebarez/sqlite"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond

	memoryDSN = ":memory:"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database, then pings and migrates it when the app starts.
func New(params Params) (*gorm.DB, error) {
	gormLogger := newGormSlogLogger(params.Logger, params.Config)

	var (
		db  *gorm.DB
		err error
	)
	switch params.Config.Database.Driver {
	case config.DriverPostgres:
		db, err = openPostgres(params.Config, gormLogger)
	case config.DriverSQLite:
		db, err = OpenSQLite(params.Config.Database.SQLitePath, gormLogger)
	default:
		err = errors.Errorf("unsupported database driver %q", params.Config.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping database")
			}

			if params.Config.Database.AutoMigrate {
				if err := migrations.Up(ctx, sqlDB, params.Config.Database.Driver, params.Logger); err != nil {
					return err
				}
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

func openPostgres(cfg *config.Config, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Unique violations must come back as gorm.ErrDuplicatedKey.
	db.TranslateError = true

	return db.Session(&gorm.Session{
		// Multi-step work goes through txManager.Execute; single statements need no implicit tx.
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	}), nil
}

// OpenSQLite opens (or creates) an SQLite database. path ":memory:" gives a
// private in-memory database, which is what the tests use.
func OpenSQLite(path string, gormLogger logger.Interface) (*gorm.DB, error) {
	dsn := path
	if path != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "create sqlite dir")
		}
		dsn = path + "?_pragma=busy_timeout(5000)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite db")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}
	// SQLite has a single writer; an in-memory db only exists on its one connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
				}
				level := slog.LevelDebug
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					level = slog.LevelWarn
				}
				logger.LogAttrs(ctx, level, "Database pool wait", attrs...)
			}

			prev = cur
		}
	}
}
