package sqlstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation covers both the translated gorm error and the raw
// driver messages, in case a dialector does not translate.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "unique constraint") || // sqlite: "UNIQUE constraint failed: users.email"
		strings.Contains(errMsg, "duplicate key") || // postgres
		strings.Contains(errMsg, "sqlstate 23505")
}

func isNotNullConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "not null constraint") ||
		strings.Contains(errMsg, "null value in column") ||
		strings.Contains(errMsg, "sqlstate 23502")
}
