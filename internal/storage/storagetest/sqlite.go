// Package storagetest provides throwaway databases for tests.
package storagetest

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teammatch/internal/models"
)

// NewSQLiteDB opens a migrated SQLite database in a temp dir that is removed
// when the test ends.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SearchHistory{},
		&models.FriendRequest{},
	))
	return db
}

// SeedUsers inserts one user per skills string, named user1, user2, and so on,
// and returns them in insertion order.
func SeedUsers(t testing.TB, db *gorm.DB, skills ...string) []models.User {
	t.Helper()

	users := make([]models.User, 0, len(skills))
	for i, s := range skills {
		u := models.User{
			Username:     "user" + strconv.Itoa(i+1),
			PasswordHash: "x",
			Skills:       s,
		}
		require.NoError(t, db.Create(&u).Error)
		users = append(users, u)
	}
	return users
}
