package db

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lunara-health/lunara/internal/models"
	"github.com/lunara-health/lunara/migrations"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "lunara-test.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return database
}

func TestOpenSQLiteAppliesAllEmbeddedMigrations(t *testing.T) {
	database := openTestDB(t)

	expected := map[string]bool{}
	err := fs.WalkDir(migrations.Files, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.HasSuffix(path, ".sql") {
			expected[filepath.Base(path)] = false
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk embedded migrations: %v", err)
	}
	if len(expected) == 0 {
		t.Fatal("expected at least one embedded migration")
	}

	var applied []string
	if err := database.Table("schema_migrations").Pluck("name", &applied).Error; err != nil {
		t.Fatalf("read migration ledger: %v", err)
	}
	for _, name := range applied {
		expected[name] = true
	}
	for name, seen := range expected {
		if !seen {
			t.Fatalf("migration %s was not recorded as applied", name)
		}
	}
}

func TestOpenSQLiteSeedsSymptomCatalogOnce(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "lunara-seed.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	var firstCount int64
	if err := database.Model(&models.Symptom{}).Count(&firstCount).Error; err != nil {
		t.Fatalf("count symptoms: %v", err)
	}
	if firstCount == 0 {
		t.Fatal("expected symptom catalog to be seeded")
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	reopened, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	var secondCount int64
	if err := reopened.Model(&models.Symptom{}).Count(&secondCount).Error; err != nil {
		t.Fatalf("recount symptoms: %v", err)
	}
	if secondCount != firstCount {
		t.Fatalf("expected seed to be idempotent, got %d then %d rows", firstCount, secondCount)
	}
}
