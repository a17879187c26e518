package testhelpers

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/foodsnap/backend/config"
	"github.com/pageza/foodsnap/backend/internal/database"
)

// SetupTestDatabase opens a migrated SQLite database in a temporary directory.
// A file is used instead of :memory: so every pooled connection sees the same data.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "foodsnap-test.db"),
	}

	db, err := database.New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.RunMigrations(db, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return db
}
