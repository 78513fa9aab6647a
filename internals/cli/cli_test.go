package cli_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"programpro_backend/internals/cli"
	"programpro_backend/internals/databases/testdb"
	"programpro_backend/internals/testutil/apptest"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := cli.NewRootCommand()

	for _, name := range []string{"serve", "migrate", "seed"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("skip-migrations"))
}

func TestNewAppServesAPI(t *testing.T) {
	db := testdb.Open(t)
	app := cli.NewApp(db)

	req := httptest.NewRequest("GET", "/api/church/info", nil)
	req.Header.Set("X-Request-ID", "req-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-ID"))

	resp, env := apptest.Do(t, app, "GET", "/api/programs/999", nil, "")
	assert.Equal(t, 404, resp.StatusCode)
	assert.False(t, env.Success)
}
