package postgres

import (
	"strings"

	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	uniqueViolationCode  = "23505"
	notNullViolationCode = "23502"
)

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}

// violatedConstraint returns the constraint name reported by PostgreSQL, if any.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}

// mapWriteError converts insert/update failures into domain errors.
func mapWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		if strings.Contains(violatedConstraint(err), "nickname") {
			return domainerrors.ErrDuplicateNickname.WrapMessage(details)
		}

		return domainerrors.ErrDuplicateEmail.WrapMessage(details)
	}

	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WithDetails("missing required user information")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}
