package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rleomotos-api/database"
	"rleomotos-api/models"
)

// newTestDB opens a fresh in-memory database, migrated and seeded the same
// way the server does it at startup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedData(db))
	return db
}

func seedStore(t *testing.T, db *gorm.DB) models.Store {
	t.Helper()
	store := models.Store{Name: "Matriz", IsActive: true}
	require.NoError(t, db.Create(&store).Error)
	return store
}

func brandByName(t *testing.T, db *gorm.DB, name string) models.Brand {
	t.Helper()
	var brand models.Brand
	require.NoError(t, db.Where("name = ?", name).First(&brand).Error)
	return brand
}

func userByEmail(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)
	return user
}

func ptr[T any](v T) *T { return &v }
