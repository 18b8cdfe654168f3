package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Tomlord1122/todo-tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	check := &pgconn.PgError{Code: "23514", ConstraintName: "todos_priority_check"}
	err := translateError(fmt.Errorf("insert: %w", check))
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.Contains(t, err.Error(), "todos_priority_check")

	other := &pgconn.PgError{Code: "57P01"}
	assert.Same(t, other, translateError(other))

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateError(plain))
	assert.NoError(t, translateError(nil))
}

// pgx rejects the argument while encoding, so Postgres never sees the row.
func TestTranslateErrorOnEncodedPriority(t *testing.T) {
	_, valueErr := domain.Priority("SOMEDAY").Value()
	encodeErr := fmt.Errorf("unable to encode %q into text format for varchar (OID 1043): %w", "SOMEDAY", valueErr)

	err := translateError(encodeErr)

	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}
