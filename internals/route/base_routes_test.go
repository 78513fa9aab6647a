package routes_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"programpro_backend/internals/databases/testdb"
	routes "programpro_backend/internals/route"
	"programpro_backend/internals/testutil/apptest"
)

func TestHealthReportsDatabase(t *testing.T) {
	db := testdb.Open(t)
	app := apptest.NewApp()
	routes.SetupRoutes(app, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	buf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(buf, &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "Connected", body.Database)
}

func TestHealthReportsClosedDatabase(t *testing.T) {
	db := testdb.Open(t)
	app := apptest.NewApp()
	routes.SetupRoutes(app, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestAPIRoutesAreMounted(t *testing.T) {
	db := testdb.Open(t)
	app := apptest.NewApp()
	routes.SetupRoutes(app, db)

	resp, env := apptest.Do(t, app, "GET", "/api/church/info", nil, "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, env.Success)

	resp, _ = apptest.Do(t, app, "GET", "/api/templates", nil, "")
	assert.Equal(t, 401, resp.StatusCode)
}
