// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/pkg/config"
	"ucstore-inventory/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database owned by t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, ":memory:")
}

// NewFileDB is NewDB backed by a file in t's temp dir.
func NewFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, filepath.Join(t.TempDir(), "store.db"))
}

func open(t *testing.T, path string) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.DBConfig{Driver: database.DriverSQLite, Path: path, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
