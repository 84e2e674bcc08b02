package repository

import (
	"context"

	"github.com/ridwanfathin/invoice-purchase-service/internal/database"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
)

// nextval is non-transactional in PostgreSQL: a value consumed by a rolled
// back purchase is never handed out again.
const nextInvoiceNumberSQL = `SELECT nextval($1::regclass)`

// PostgresSequenceAllocator implements SequenceAllocator on a PostgreSQL SEQUENCE
type PostgresSequenceAllocator struct {
	db       *database.PostgresDB
	sequence string
}

// NewPostgresSequenceAllocator creates an allocator reading from the named sequence
func NewPostgresSequenceAllocator(db *database.PostgresDB, sequence string) *PostgresSequenceAllocator {
	return &PostgresSequenceAllocator{db: db, sequence: sequence}
}

// NextInvoiceNumber returns the next value of the invoice sequence
func (a *PostgresSequenceAllocator) NextInvoiceNumber(ctx context.Context) (int64, error) {
	var next int64
	if err := a.db.Querier(ctx).QueryRow(ctx, nextInvoiceNumberSQL, a.sequence).Scan(&next); err != nil {
		return 0, ierr.WithError(err).
			WithMessage("invoice sequence query failed").
			WithHint("Error al obtener el número de factura").
			WithReportableDetails(map[string]any{"sequence": a.sequence}).
			Mark(ierr.ErrAllocation)
	}
	return next, nil
}
