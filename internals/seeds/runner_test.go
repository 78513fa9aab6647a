package seeds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"programpro_backend/internals/databases/testdb"
	authRepo "programpro_backend/internals/features/users/auth/repository"
	authService "programpro_backend/internals/features/users/auth/service"
	"programpro_backend/internals/seeds"
)

func TestEnsureAdminUserCreatesChurchAndAdmin(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	created, err := seeds.EnsureAdminUser(ctx, db, seeds.AdminSeed{Username: "admin", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, created)

	u, err := authRepo.FindUserByUsername(ctx, db, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	require.NotNil(t, u.ChurchID)
	require.NoError(t, authService.CheckPasswordHash(u.PasswordHash, "secret123"))

	var name string
	require.NoError(t, db.Raw(`SELECT name FROM churches WHERE id = ?`, *u.ChurchID).Row().Scan(&name))
	assert.Equal(t, "Default Church", name)
}

func TestEnsureAdminUserIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	churchID := testdb.SeedChurch(t, db, "St. Mark")

	seed := seeds.AdminSeed{Username: "admin", Password: "secret123"}
	created, err := seeds.EnsureAdminUser(ctx, db, seed)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seeds.EnsureAdminUser(ctx, db, seed)
	require.NoError(t, err)
	assert.False(t, created)

	u, err := authRepo.FindUserByUsername(ctx, db, "admin")
	require.NoError(t, err)
	assert.Equal(t, churchID, *u.ChurchID)

	var churches int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM churches`).Row().Scan(&churches))
	assert.EqualValues(t, 1, churches)
}

func TestEnsureAdminUserSkipsWithoutPassword(t *testing.T) {
	db := testdb.Open(t)

	created, err := seeds.EnsureAdminUser(context.Background(), db, seeds.AdminSeed{Username: "admin"})
	require.NoError(t, err)
	assert.False(t, created)

	var users int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM users`).Row().Scan(&users))
	assert.Zero(t, users)
}
