package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/migrate/migrations"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks migration filenames, version uniqueness and goose
// annotations. EmbeddedDir validates the compiled-in set.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if dir == EmbeddedDir {
		return ValidateFS(migrations.FS)
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}
	return ValidateFS(os.DirFS(dir))
}

// ValidateFS runs the same checks against the root of fsys.
func ValidateFS(fsys fs.FS) error {
	versions, err := versionsIn(fsys)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		return fmt.Errorf("no migrations found")
	}
	for _, name := range versions {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read file %q: %w", name, err)
		}
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(string(body), marker) {
				return fmt.Errorf("migration %q missing %q", name, marker)
			}
		}
	}
	return nil
}

// versionsIn maps each migration version to its filename and rejects
// malformed or duplicate entries.
func versionsIn(fsys fs.FS) (map[string]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, ok := seen[m[1]]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		seen[m[1]] = name
	}
	return seen, nil
}
