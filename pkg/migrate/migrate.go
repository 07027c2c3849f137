package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/angelmondragon/storefront-backend/pkg/migrate/migrations"
)

const (
	DefaultDir = "pkg/migrate/migrations"
	// EmbeddedDir selects the SQL files compiled into the binary.
	EmbeddedDir = "embedded"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

func prepare(dir string) (string, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}
	if dir == EmbeddedDir {
		goose.SetBaseFS(migrations.FS)
		return ".", nil
	}
	goose.SetBaseFS(nil)
	return dir, nil
}

// Run executes a standard goose command that requires a DB connection.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	resolved, err := prepare(dir)
	if err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, resolved, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion migrates up/down to the requested version by comparing current DB version.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	resolved, err := prepare(dir)
	if err != nil {
		return err
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, resolved, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if err := goose.DownToContext(ctx, db, resolved, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}

// EmbeddedFiles lists the migration files compiled into the binary.
func EmbeddedFiles() ([]string, error) {
	return fs.Glob(migrations.FS, "*.sql")
}
