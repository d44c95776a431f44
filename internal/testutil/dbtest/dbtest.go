// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"context"
	"testing"

	"blog/config"
	"blog/internal/infra/persistence/migrations"
	"blog/internal/infra/persistence/sqlstore"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated, private in-memory SQLite database that is closed when t ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := sqlstore.OpenSQLite(":memory:", logger.Discard)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.Up(context.Background(), sqlDB, config.DriverSQLite, nil))

	return db
}
