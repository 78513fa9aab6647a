package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"programpro_backend/internals/configs"
	"programpro_backend/internals/databases/migrations"
	"programpro_backend/internals/databases/testdb"
	"programpro_backend/internals/features/users/auth/scheduler"
	helperAuth "programpro_backend/internals/helpers/auth"
)

func TestPurgeBlacklist(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	require.NoError(t, helperAuth.Blacklist(ctx, db, "expired", "s", time.Now().Add(-time.Minute)))
	require.NoError(t, helperAuth.Blacklist(ctx, db, "live", "s", time.Now().Add(time.Hour)))

	scheduler.PurgeBlacklist(ctx, db)

	var n int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM token_blacklist`).Row().Scan(&n))
	assert.EqualValues(t, 1, n)
}

func TestPurgeBlacklistBeforeTableExists(t *testing.T) {
	db := testdb.OpenAt(t, migrations.VersionChurchOptional)

	assert.NotPanics(t, func() { scheduler.PurgeBlacklist(context.Background(), db) })
	assert.False(t, db.Migrator().HasTable("token_blacklist"))
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	db := testdb.Open(t)
	prev := configs.BlacklistPurgeCron
	t.Cleanup(func() { configs.BlacklistPurgeCron = prev })

	configs.BlacklistPurgeCron = "not a cron spec"
	_, err := scheduler.StartBlacklistCleanupScheduler(db)
	assert.Error(t, err)

	configs.BlacklistPurgeCron = "@every 1h"
	c, err := scheduler.StartBlacklistCleanupScheduler(db)
	require.NoError(t, err)
	c.Stop()
}
