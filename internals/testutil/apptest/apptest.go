// Package apptest drives fiber handlers in tests the way the server mounts
// them: same error handler, same request context, same envelope.
package apptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"programpro_backend/internals/configs"
	helper "programpro_backend/internals/helpers"
	helperAuth "programpro_backend/internals/helpers/auth"
	"programpro_backend/internals/middlewares"
)

func init() {
	if configs.JWTSecret == "" {
		configs.JWTSecret = "test-secret"
	}
	if configs.JWTRefreshSecret == "" {
		configs.JWTRefreshSecret = "test-refresh-secret"
	}
}

// Envelope is the decoded response body.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Data       json.RawMessage     `json:"data"`
	Errors     map[string][]string `json:"errors"`
	Details    json.RawMessage     `json:"details"`
	Pagination json.RawMessage     `json:"pagination"`
}

// Decode unmarshals the data field into dst.
func (e Envelope) Decode(t testing.TB, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, dst))
}

func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(middlewares.RequestContext(5 * time.Second))
	return app
}

// Token issues an access token for a user.
func Token(t testing.TB, userID, churchID int64, username, role string) string {
	t.Helper()
	raw, _, err := helperAuth.IssueToken(helperAuth.TokenUser{
		ID: userID, Username: username, ChurchID: churchID, Role: role,
	}, helperAuth.TokenAccess, configs.JWTSecret, time.Hour, time.Now())
	require.NoError(t, err)
	return raw
}

// Do sends body as JSON (nil for none) with an optional bearer token.
func Do(t testing.TB, app *fiber.App, method, path string, body any, token string) (*http.Response, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var env Envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}
