package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))

	return env
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/health")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}

func TestAPIHandler_Users(t *testing.T) {
	app := newTestApp(t)
	ada := createUser(t, app, "Ada", "ada@x.com")
	createUser(t, app, "Grace", "grace@x.com")

	rec := app.get("/api/users")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), ada.PasswordHash)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec.Body.Bytes()).Data, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "Ada", users[0]["name"])
	assert.Equal(t, "Grace", users[1]["name"])

	rec = app.get("/api/users/" + ada.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada@x.com"`)
}

func TestAPIHandler_UserNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/api/users/" + uuid.NewString())
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)

	rec = app.get("/api/users/not-a-uuid")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, rec.Body.Bytes()).Error.Code)
}

func TestAPIHandler_Posts(t *testing.T) {
	app := newTestApp(t)
	post := createPost(t, app, "JSON post")

	rec := app.get("/api/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "JSON post")

	rec = app.get("/api/posts/" + post.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"some-slug"`)

	rec = app.get("/api/posts/" + uuid.NewString())
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "POST_NOT_FOUND", decodeEnvelope(t, rec.Body.Bytes()).Error.Code)
}

func TestAPIHandler_StorageFailureIsJSON(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.db.Exec("DROP TABLE users").Error)

	rec := app.get("/api/users")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", env.Error.Code)
	assert.NotContains(t, rec.Body.String(), "no such table")
}
