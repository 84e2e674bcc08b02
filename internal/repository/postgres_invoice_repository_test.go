package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedHint string
		constraint   string
	}{
		{
			name:         "unique_violation",
			err:          &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "factura_pkey"},
			expectedHint: "La factura ya existe",
			constraint:   "factura_pkey",
		},
		{
			name:         "foreign_key_violation",
			err:          &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "fk_detalle_factura_factura"},
			expectedHint: "La factura referenciada no existe",
			constraint:   "fk_detalle_factura_factura",
		},
		{
			name:         "other_driver_error",
			err:          errors.New("connection reset by peer"),
			expectedHint: "Error al realizar la compra",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := writeError(tc.err, "failed to insert invoice", map[string]any{"invoice": "A-1"})

			assert.True(t, ierr.IsPersistence(err))
			assert.False(t, ierr.IsValidation(err))
			assert.Equal(t, tc.expectedHint, ierr.DisplayMessage(err, ""))

			details := ierr.ReportableDetails(err)
			assert.Equal(t, "A-1", details["invoice"])
			if tc.constraint != "" {
				assert.Equal(t, tc.constraint, details["constraint"])
			} else {
				assert.NotContains(t, details, "constraint")
			}
		})
	}
}

func TestWriteError_NilDetails(t *testing.T) {
	err := writeError(&pgconn.PgError{Code: pgUniqueViolation}, "failed", nil)
	assert.True(t, ierr.IsPersistence(err))
}

func TestReadError(t *testing.T) {
	cause := errors.New("timeout")
	err := readError(cause, "failed to list invoices")

	assert.True(t, ierr.IsPersistence(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "timeout", ierr.Cause(err))
}
