package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/lunara-health/lunara/migrations"
	"gorm.io/gorm"
)

var migrationNamePattern = regexp.MustCompile(`^(\d+)_.+\.sql$`)

// migrateSchema runs every embedded forward-only migration that
// the schema_migrations ledger does not list yet, lowest version first.
// Each migration executes inside one transaction together with its ledger
// row, so a failed migration leaves no partial trace.
func migrateSchema(database *gorm.DB) error {
	const ledgerSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(ledgerSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	names, err := sortedMigrationNames()
	if err != nil {
		return err
	}

	applied, err := appliedMigrationNames(database)
	if err != nil {
		return err
	}

	for _, name := range names {
		if _, done := applied[name]; done {
			continue
		}
		if err := runMigration(database, name); err != nil {
			return err
		}
	}
	return nil
}

func sortedMigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !migrationNamePattern.MatchString(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	// Zero-padded numeric prefixes make lexical order the version order.
	sort.Strings(names)
	return names, nil
}

func appliedMigrationNames(database *gorm.DB) (map[string]struct{}, error) {
	var names []string
	if err := database.Raw(`SELECT name FROM schema_migrations`).Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}

	applied := make(map[string]struct{}, len(names))
	for _, name := range names {
		applied[name] = struct{}{}
	}
	return applied, nil
}

func runMigration(database *gorm.DB, name string) error {
	raw, err := fs.ReadFile(migrations.Files, name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range strings.Split(string(raw), ";") {
			statement = strings.TrimSpace(statement)
			if statement == "" {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", name, err)
			}
		}
		version := migrationNamePattern.FindStringSubmatch(name)[1]
		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			version, name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		return nil
	})
}
