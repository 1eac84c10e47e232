package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
)

// ValidateDir validates every dialect subdirectory under dir and checks that
// each dialect carries the same set of versions.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	var reference map[string]string
	var referenceDialect string
	for _, subdir := range dialectDirs {
		versions, err := validateDialectDir(filepath.Join(dir, subdir))
		if err != nil {
			return err
		}
		if reference == nil {
			reference, referenceDialect = versions, subdir
			continue
		}
		for version, name := range reference {
			if _, ok := versions[version]; !ok {
				return fmt.Errorf("migration %q exists for %s but not for %s", name, referenceDialect, subdir)
			}
		}
		for version, name := range versions {
			if _, ok := reference[version]; !ok {
				return fmt.Errorf("migration %q exists for %s but not for %s", name, subdir, referenceDialect)
			}
		}
	}
	return nil
}

var dialectDirs = []string{"sqlite", "postgres"}

func validateDialectDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("read file %q: %w", full, err)
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !strings.Contains(txt, "-- +goose Down") {
			return nil, fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}
	}

	return seen, nil
}
