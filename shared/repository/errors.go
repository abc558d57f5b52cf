package repository

import (
	"errors"

	"guesthouse/shared/constant"

	"github.com/lib/pq"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsUniqueViolation reports whether err was raised by a unique index.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

// IsExclusionViolation reports whether err was raised by an exclusion constraint.
func IsExclusionViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeExclusion
}

// IsForeignKeyViolation reports whether err was raised by a foreign key.
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}

// ConstraintName returns the violated constraint of a postgres error, if any.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}

	return ""
}
