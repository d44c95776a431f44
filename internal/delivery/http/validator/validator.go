// Package validator adapts go-playground/validator to echo.Validator for
// HTML form structs.
package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	domainerrors "blog/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
)

const (
	// modTag marks string fields whose surrounding whitespace is removed before validation.
	modTag  = "mod"
	modTrim = "trim"

	// bcryptMaxBytes is the longest input bcrypt accepts. max= counts runes, so it cannot enforce this.
	bcryptMaxBytes = 72
)

// FormError carries one message per failed form field, keyed by the field's
// form tag name. Only the first failing rule of a field is reported.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *FormError) Unwrap() error {
	return domainerrors.ErrValidationFailed
}

// Message returns the error for field, or "" when the field passed.
func (e *FormError) Message(field string) string {
	if e == nil {
		return ""
	}

	return e.Fields[field]
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}

		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("bcryptlen", bcryptLen); err != nil {
		panic(err)
	}

	return &Validator{validate: v}
}

// Validate trims the `mod:"trim"` fields of i in place and validates it.
// i must be a pointer to a struct.
func (v *Validator) Validate(i any) error {
	trimFields(i)

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.WithStack(err)
	}

	formErr := &FormError{Fields: make(map[string]string, len(validationErrs))}
	for _, fieldErr := range validationErrs {
		if _, seen := formErr.Fields[fieldErr.Field()]; seen {
			continue
		}
		formErr.Fields[fieldErr.Field()] = message(fieldErr)
	}

	return formErr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "eqfield":
		return "Passwords must match!"
	case "email":
		return "Invalid email address."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "bcryptlen":
		return fmt.Sprintf("Password cannot be longer than %d bytes.", bcryptMaxBytes)
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}

func bcryptLen(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= bcryptMaxBytes
}

func trimFields(i any) {
	rv := reflect.ValueOf(i)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}

	rt := rv.Type()
	for idx := range rt.NumField() {
		field := rt.Field(idx)
		if field.Type.Kind() != reflect.String || field.Tag.Get(modTag) != modTrim {
			continue
		}
		fv := rv.Field(idx)
		if fv.CanSet() {
			fv.SetString(strings.TrimSpace(fv.String()))
		}
	}
}
