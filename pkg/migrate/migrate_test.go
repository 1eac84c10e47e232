package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/droptracker-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestShippedMigrationsEnforceSoldState(t *testing.T) {
	for _, dialect := range dialectDirs {
		matches, err := filepath.Glob(filepath.Join("migrations", dialect, "*_create_core_tables.sql"))
		require.NoError(t, err)
		require.Len(t, matches, 1, dialect)

		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		content := string(data)

		for _, sub := range []string{
			"CREATE TABLE IF NOT EXISTS users",
			"CREATE TABLE IF NOT EXISTS items",
			"CREATE TABLE IF NOT EXISTS inventory",
			"FOREIGN KEY (item_id) REFERENCES items (id)",
			"sell_price > 0",
			"DROP TABLE IF EXISTS inventory",
		} {
			assert.Contains(t, content, sub, "%s migration", dialect)
		}
	}
}

func TestCreateSQLMigrationWritesEveryDialect(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)

	paths, err := CreateSQLMigration(dir, "Add Loot Source", now)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.True(t, strings.HasSuffix(p, "20250401093000_add_loot_source.sql"), p)
	}
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "Add Loot Source", now)
	assert.Error(t, err, "duplicate version must fail")
}

func TestValidateDirDetectsDialectDrift(t *testing.T) {
	dir := t.TempDir()
	_, err := CreateSQLMigration(dir, "first", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	extra := filepath.Join(dir, "sqlite", "20250102000000_only_sqlite.sql")
	require.NoError(t, os.WriteFile(extra, []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err = ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only_sqlite")
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	for _, d := range dialectDirs {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, d, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	}
	assert.Error(t, ValidateDir(dir))
}

func TestRunEmbeddedSQLiteUpAndDown(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_run?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	require.NoError(t, Run(ctx, sqlDB, config.DBDriverSQLite, "", "up"))

	for _, table := range []string{"users", "items", "inventory"} {
		assert.True(t, conn.Migrator().HasTable(table), "expected table %s", table)
	}

	require.NoError(t, Run(ctx, sqlDB, config.DBDriverSQLite, "", "down"))
	assert.False(t, conn.Migrator().HasTable("inventory"))
}

func TestDialectRejectsUnknownDriver(t *testing.T) {
	_, _, err := Dialect("oracle")
	assert.Error(t, err)

	dialect, subdir, err := Dialect(config.DBDriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", dialect)
	assert.Equal(t, "postgres", subdir)
}
