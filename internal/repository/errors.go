package repository

import (
	"errors"
	"fmt"

	"github.com/Tomlord1122/todo-tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConstraintViolation is returned when the store rejects a row that
// breaks a CHECK, NOT NULL or UNIQUE constraint. A priority the driver
// refuses to encode counts as a CHECK failure.
var ErrConstraintViolation = errors.New("constraint violation")

// Postgres SQLSTATE codes for integrity constraint violations.
const (
	pgNotNullViolation = "23502"
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
)

func translateError(err error) error {
	if errors.Is(err, domain.ErrInvalidPriority) {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgUniqueViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pgErr.ConstraintName)
		}
	}
	return err
}
