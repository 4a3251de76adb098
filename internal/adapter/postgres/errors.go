package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"vitrine/internal/core/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
)

// wrapErr converts driver errors into the domain taxonomy: unique-key
// violations become conflicts, serialization failures become retryable
// store errors, everything else a plain store error.
func wrapErr(err error, conflictReason string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &domain.ConflictError{Reason: conflictReason}
		case codeSerializationFailure:
			return &domain.StoreError{Err: err, Retryable: true}
		}
	}
	return &domain.StoreError{Err: err}
}
