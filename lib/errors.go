package lib

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid transition")
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid token")
)

// MapPgError translates driver-level postgres errors into domain errors.
func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
