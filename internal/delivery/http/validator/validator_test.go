package validator

import (
	"strings"
	"testing"

	"blog/internal/delivery/http/form"
	domainerrors "blog/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_UserForm(t *testing.T) {
	tests := []struct {
		name       string
		form       form.UserForm
		wantFields map[string]string
	}{
		{
			name: "valid",
			form: form.UserForm{
				Name:            "Ada",
				Email:           "ada@x.com",
				FavoriteColor:   "blue",
				Password:        "secret1",
				PasswordConfirm: "secret1",
			},
		},
		{
			name: "favorite color is optional",
			form: form.UserForm{
				Name:            "Ada",
				Email:           "ada@x.com",
				Password:        "secret1",
				PasswordConfirm: "secret1",
			},
		},
		{
			name: "blank name after trimming",
			form: form.UserForm{
				Name:            "   ",
				Email:           "ada@x.com",
				Password:        "secret1",
				PasswordConfirm: "secret1",
			},
			wantFields: map[string]string{"name": "This field is required."},
		},
		{
			name: "password mismatch is reported on the confirmation field",
			form: form.UserForm{
				Name:            "Ada",
				Email:           "ada@x.com",
				Password:        "secret1",
				PasswordConfirm: "secret2",
			},
			wantFields: map[string]string{"password_hash2": "Passwords must match!"},
		},
		{
			name: "missing confirmation stops at the required rule",
			form: form.UserForm{
				Name:     "Ada",
				Email:    "ada@x.com",
				Password: "secret1",
			},
			wantFields: map[string]string{"password_hash2": "This field is required."},
		},
		{
			name: "every field is checked",
			form: form.UserForm{},
			wantFields: map[string]string{
				"name":           "This field is required.",
				"email":          "This field is required.",
				"password_hash":  "This field is required.",
				"password_hash2": "This field is required.",
			},
		},
		{
			name: "malformed email",
			form: form.UserForm{
				Name:            "Ada",
				Email:           "not-an-email",
				Password:        "secret1",
				PasswordConfirm: "secret1",
			},
			wantFields: map[string]string{"email": "Invalid email address."},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.form
			err := v.Validate(&f)

			if tt.wantFields == nil {
				require.NoError(t, err)

				return
			}

			var formErr *FormError
			require.True(t, errors.As(err, &formErr), "expected *FormError, got %v", err)
			assert.Equal(t, tt.wantFields, formErr.Fields)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestValidator_TrimsMarkedFields(t *testing.T) {
	f := form.UserForm{
		Name:            "  Ada  ",
		Email:           " ada@x.com\t",
		FavoriteColor:   " blue ",
		Password:        " secret1 ",
		PasswordConfirm: " secret1 ",
	}

	require.NoError(t, New().Validate(&f))

	assert.Equal(t, "Ada", f.Name)
	assert.Equal(t, "ada@x.com", f.Email)
	assert.Equal(t, "blue", f.FavoriteColor)
	// passwords are never rewritten
	assert.Equal(t, " secret1 ", f.Password)
	assert.Equal(t, " secret1 ", f.PasswordConfirm)
}

func TestValidator_MaxLength(t *testing.T) {
	f := form.PostForm{
		Title:   strings.Repeat("a", 256),
		Content: "body",
		Author:  "Ada",
		Slug:    "slug",
	}

	err := New().Validate(&f)

	var formErr *FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "Field cannot be longer than 255 characters.", formErr.Message("title"))
	assert.Empty(t, formErr.Message("content"))
}

func TestValidator_PasswordByteLength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "at the limit", password: strings.Repeat("a", 72)},
		{name: "one byte over", password: strings.Repeat("a", 73), wantErr: true},
		// 25 runes, 75 bytes
		{name: "multibyte over", password: strings.Repeat("日", 25), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := form.UserForm{
				Name:            "Ada",
				Email:           "ada@x.com",
				Password:        tt.password,
				PasswordConfirm: tt.password,
			}

			err := New().Validate(&f)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			var formErr *FormError
			require.True(t, errors.As(err, &formErr))
			assert.Equal(t, "Password cannot be longer than 72 bytes.", formErr.Message("password_hash"))
			assert.Equal(t, "Password cannot be longer than 72 bytes.", formErr.Message("password_hash2"))
		})
	}
}

func TestFormError_Error(t *testing.T) {
	err := &FormError{Fields: map[string]string{
		"name":  "This field is required.",
		"email": "Invalid email address.",
	}}

	assert.Equal(t, "validation failed: email: Invalid email address.; name: This field is required.", err.Error())

	var nilErr *FormError
	assert.Empty(t, nilErr.Message("name"))
}
