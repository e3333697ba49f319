package testutils

import (
	"testing"

	"github.com/forkcast/forkcast/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewTestDatabase opens a migrated in-memory SQLite database
func NewTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase(":memory:", gormLogger.Silent)
	require.NoError(t, err, "failed to set up test database")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
