package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func columnsOf(t *testing.T, db *gorm.DB, table string) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Raw(`SELECT name FROM pragma_table_info(?)`, table).Scan(&names).Error)
	return names
}

func TestListRendersDialectPlaceholders(t *testing.T) {
	pg, err := List("postgres", 0)
	require.NoError(t, err)
	require.Len(t, pg, len(all))
	assert.Contains(t, pg[0].Script, "BIGSERIAL PRIMARY KEY")
	assert.Contains(t, pg[0].Script, "TIMESTAMPTZ")

	lite, err := List("sqlite", 0)
	require.NoError(t, err)
	assert.Contains(t, lite[0].Script, "INTEGER PRIMARY KEY AUTOINCREMENT")

	for _, m := range append(pg, lite...) {
		assert.False(t, strings.Contains(m.Script, "{{"), "unrendered placeholder in %.1f", m.Version)
	}
}

func TestListStopsAtVersion(t *testing.T) {
	list, err := List("sqlite", VersionProgramFields)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, VersionProgramFields, list[2].Version)
}

func TestListRejectsUnknownDialect(t *testing.T) {
	_, err := List("oracle", 0)
	require.Error(t, err)
}

func TestRunAppliesEverything(t *testing.T) {
	db := openSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	require.NoError(t, Run(sqlDB, "sqlite"))
	// second run is a no-op
	require.NoError(t, Run(sqlDB, "sqlite"))

	assert.Contains(t, columnsOf(t, db, "schedule_items"), "order_index")
	assert.Contains(t, columnsOf(t, db, "special_guests"), "display_order")
	assert.Contains(t, columnsOf(t, db, "churches"), "theme_config")
	assert.Contains(t, columnsOf(t, db, "token_blacklist"), "expired_at")
}

func TestRunUpToLeavesLaterColumnsOut(t *testing.T) {
	db := openSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	require.NoError(t, RunUpTo(sqlDB, "sqlite", VersionProgramFields))

	cols := columnsOf(t, db, "schedule_items")
	assert.Contains(t, cols, "title")
	assert.NotContains(t, cols, "order_index")
	assert.NotContains(t, cols, "type")
	assert.Contains(t, columnsOf(t, db, "programs"), "is_active")

	// finishing the chain later adds the rest
	require.NoError(t, Run(sqlDB, "sqlite"))
	assert.Contains(t, columnsOf(t, db, "schedule_items"), "order_index")
}
