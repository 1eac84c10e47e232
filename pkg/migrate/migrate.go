package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"strconv"

	"github.com/angelmondragon/droptracker-backend/pkg/config"
	"github.com/pressly/goose/v3"
)

// DefaultDir is the on-disk root used by cmd/migrate for create/validate.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*/*.sql
var embedded embed.FS

// Dialect maps a configured DB driver onto the goose dialect and migrations subdir.
func Dialect(driver string) (string, string, error) {
	switch driver {
	case config.DBDriverSQLite:
		return "sqlite3", "sqlite", nil
	case config.DBDriverPostgres:
		return "postgres", "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported migration driver %q", driver)
	}
}

// Run executes a goose command that requires a DB connection. An empty dir runs
// the migrations embedded in the binary; otherwise dir is read from disk.
func Run(ctx context.Context, db *sql.DB, driver, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	migrationsDir, err := prepare(driver, dir)
	if err != nil {
		return err
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver, dir, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	migrationsDir, err := prepare(driver, dir)
	if err != nil {
		return err
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, migrationsDir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
		return nil
	default:
		if err := goose.DownToContext(ctx, db, migrationsDir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
		return nil
	}
}

// prepare points goose at the dialect and filesystem for the run and returns the
// directory to read migrations from.
func prepare(driver, dir string) (string, error) {
	dialect, subdir, err := Dialect(driver)
	if err != nil {
		return "", err
	}
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}

	if dir == "" {
		goose.SetBaseFS(embedded)
		return path.Join("migrations", subdir), nil
	}
	goose.SetBaseFS(nil)
	return path.Join(dir, subdir), nil
}
