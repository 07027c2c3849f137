package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var nameSanitizeRe = regexp.MustCompile(`[^a-z0-9]+`)

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %[1]s
-- +goose StatementEnd
`

// CreateSQLMigration writes <dir>/<YYYYMMDDHHMMSS>_<name>.sql with an empty
// goose Up/Down pair. The version is bumped past any existing one so two files
// created within the same second do not collide.
func CreateSQLMigration(dir string, name string) (string, error) {
	return createSQLMigration(dir, name, time.Now().UTC())
}

func createSQLMigration(dir, name string, now time.Time) (string, error) {
	if dir == "" || dir == EmbeddedDir {
		return "", fmt.Errorf("a writable dir is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return "", fmt.Errorf("name %q results in empty sanitized filename", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	existing, err := versionsIn(os.DirFS(dir))
	if err != nil {
		return "", err
	}
	version := now.Format(versionLayout)
	for {
		if _, taken := existing[version]; !taken {
			break
		}
		now = now.Add(time.Second)
		version = now.Format(versionLayout)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, slug))
	if err := os.WriteFile(path, []byte(fmt.Sprintf(migrationTemplate, slug)), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}

func migrationSlug(name string) string {
	slug := nameSanitizeRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(slug, "_")
}
