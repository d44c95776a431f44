package handler_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adaForm() url.Values {
	return url.Values{
		"name":           {"Ada"},
		"email":          {"ada@x.com"},
		"favorite_color": {"blue"},
		"password_hash":  {"secret1"},
		"password_hash2": {"secret1"},
	}
}

func createUser(t *testing.T, app *testApp, name, email string) *entity.User {
	t.Helper()

	user, err := app.users.CreateUser(context.Background(), &usecase.CreateUserInput{
		Name:          name,
		Email:         email,
		FavoriteColor: "red",
		Password:      "secret1",
	})
	require.NoError(t, err)

	return user
}

func TestUserHandler_AddUserForm(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "Grace", "grace@x.com")

	rec := app.get("/user/add")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Add User")
	assert.Contains(t, rec.Body.String(), "grace@x.com")
}

func TestUserHandler_AddUser(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	rec := app.postForm("/user/add", adaForm())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "User Added Successfully!")
	assert.Contains(t, body, "ada@x.com")
	assert.NotContains(t, body, "secret1")

	users, err := app.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
	assert.Equal(t, "ada@x.com", users[0].Email)
	assert.Equal(t, "blue", users[0].FavoriteColor)
	assert.NotEqual(t, "secret1", users[0].PasswordHash)

	out, err := app.users.VerifyPassword(ctx, &usecase.VerifyPasswordInput{Email: "ada@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, out.Passed)
}

func TestUserHandler_AddUser_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusOK, app.postForm("/user/add", adaForm()).Code)

	second := adaForm()
	second.Set("name", "Ada Again")
	rec := app.postForm("/user/add", second)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "A user with this email already exists")
	// the rejected form keeps its values
	assert.Contains(t, rec.Body.String(), `value="Ada Again"`)

	users, err := app.users.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestUserHandler_AddUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(url.Values)
		message string
	}{
		{
			name:    "password mismatch",
			mutate:  func(v url.Values) { v.Set("password_hash2", "secret2") },
			message: "Passwords must match!",
		},
		{
			name:    "missing name",
			mutate:  func(v url.Values) { v.Del("name") },
			message: "This field is required.",
		},
		{
			name:    "blank email",
			mutate:  func(v url.Values) { v.Set("email", "  ") },
			message: "This field is required.",
		},
		{
			name: "password longer than bcrypt accepts",
			mutate: func(v url.Values) {
				v.Set("password_hash", strings.Repeat("a", 73))
				v.Set("password_hash2", strings.Repeat("a", 73))
			},
			message: "Password cannot be longer than 72 bytes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			values := adaForm()
			tt.mutate(values)

			rec := app.postForm("/user/add", values)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
			assert.NotContains(t, rec.Body.String(), "secret")

			users, err := app.users.ListUsers(context.Background())
			require.NoError(t, err)
			assert.Empty(t, users)
		})
	}
}

func TestUserHandler_UpdateUser(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	user := createUser(t, app, "Ada", "ada@x.com")

	rec := app.get("/update/" + user.ID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="ada@x.com"`)

	rec = app.postForm("/update/"+user.ID.String(), url.Values{
		"name":           {"Ada Lovelace"},
		"email":          {"ada@lovelace.org"},
		"favorite_color": {"green"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User Updated Successfully!")

	stored, err := app.users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.Name)
	assert.Equal(t, "ada@lovelace.org", stored.Email)
	assert.Equal(t, "green", stored.FavoriteColor)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
	assert.True(t, user.CreatedAt.Equal(stored.CreatedAt))
}

func TestUserHandler_UpdateUser_EmailTaken(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "Grace", "grace@x.com")
	ada := createUser(t, app, "Ada", "ada@x.com")

	rec := app.postForm("/update/"+ada.ID.String(), url.Values{
		"name":  {"Ada"},
		"email": {"grace@x.com"},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "A user with this email already exists")

	stored, err := app.users.GetUser(context.Background(), ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", stored.Email)
}

func TestUserHandler_UpdateUser_Invalid(t *testing.T) {
	app := newTestApp(t)
	user := createUser(t, app, "Ada", "ada@x.com")

	rec := app.postForm("/update/"+user.ID.String(), url.Values{"name": {""}, "email": {"ada@x.com"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/update/" + uuid.NewString(), "/update/42"} {
		rec := app.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "404 Error - Page Not Found", path)

		rec = app.postForm(path, url.Values{"name": {"x"}, "email": {"x@x.com"}})
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	user := createUser(t, app, "Ada", "ada@x.com")
	path := "/delete/" + user.ID.String()

	// GET only asks for confirmation.
	rec := app.get(path)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Delete User")
	_, err := app.users.GetUser(ctx, user.ID)
	require.NoError(t, err)

	rec = app.postForm(path, url.Values{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User Deleted Successfully!!")

	_, err = app.users.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	rec = app.postForm(path, url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_TestPassword(t *testing.T) {
	app := newTestApp(t)
	createUser(t, app, "Ada", "ada@x.com")

	rec := app.get("/test_pw")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.postForm("/test_pw", url.Values{"email": {"ada@x.com"}, "password_hash": {"secret1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Found User: Ada")
	assert.Contains(t, rec.Body.String(), "Passed: true")

	rec = app.postForm("/test_pw", url.Values{"email": {"ada@x.com"}, "password_hash": {"wrong"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passed: false")

	rec = app.postForm("/test_pw", url.Values{"email": {"ghost@x.com"}, "password_hash": {"secret1"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No user found with that email")

	rec = app.postForm("/test_pw", url.Values{"email": {"ada@x.com"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "This field is required.")
}
