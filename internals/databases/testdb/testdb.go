// Package testdb opens throwaway SQLite databases migrated with the
// production migration list, optionally stopped at an earlier version.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"programpro_backend/internals/databases/migrations"
)

// Open returns an in-memory database with every migration applied.
func Open(t testing.TB) *gorm.DB {
	return OpenAt(t, 0)
}

// OpenAt returns an in-memory database migrated up to version
// (0 means all migrations).
func OpenAt(t testing.TB, version float64) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection: every ":memory:" connection is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.RunUpTo(sqlDB, db.Dialector.Name(), version))
	return db
}

// SeedChurch inserts a church and returns its id.
func SeedChurch(t testing.TB, db *gorm.DB, name string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.Raw(`INSERT INTO churches (name) VALUES (?) RETURNING id`, name).Row().Scan(&id))
	return id
}

// SeedProgram inserts a program owned by churchID and returns its id.
func SeedProgram(t testing.TB, db *gorm.DB, churchID int64, title string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.Raw(`INSERT INTO programs (church_id, title) VALUES (?, ?) RETURNING id`, churchID, title).Row().Scan(&id))
	return id
}

// SeedUser inserts a user of churchID with role and returns its id. The
// password hash is a placeholder; tests that log in register through the API.
func SeedUser(t testing.TB, db *gorm.DB, churchID int64, username, role string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.Raw(
		`INSERT INTO users (username, password_hash, role, church_id) VALUES (?, ?, ?, ?) RETURNING id`,
		username, "x", role, churchID,
	).Row().Scan(&id))
	return id
}
