package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ridwanfathin/invoice-purchase-service/internal/database"
	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
)

// PostgreSQL error codes handled explicitly
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const (
	insertInvoiceSQL = `
		INSERT INTO factura ("NO_FACTURA", "SERIE_FACTURA", "fechaFactura", "idCliente", "idEmpleado", "idSucursal", "total", "correo")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	insertLineItemSQL = `
		INSERT INTO detalle_factura ("idDetalle", "NO_FACTURA", "SERIE_FACTURA", "idAlimento", "noReserva", "costo", "fechaCompra", "lugarCompra")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	selectInvoiceSQL = `
		SELECT "NO_FACTURA", "SERIE_FACTURA", "fechaFactura", "idCliente", "idEmpleado", "idSucursal", "total", "correo"
		FROM factura
		WHERE "NO_FACTURA" = $1 AND "SERIE_FACTURA" = $2
	`

	selectInvoicesByCustomerSQL = `
		SELECT "NO_FACTURA", "SERIE_FACTURA", "fechaFactura", "total"
		FROM factura
		WHERE "idCliente" = $1
	`

	selectLineItemsByInvoiceSQL = `
		SELECT "idDetalle", "NO_FACTURA", "SERIE_FACTURA", "idAlimento", "noReserva", "costo", "fechaCompra", "lugarCompra"
		FROM detalle_factura
		WHERE "NO_FACTURA" = $1 AND "SERIE_FACTURA" = $2
		ORDER BY "idDetalle"
	`
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *database.PostgresDB
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *database.PostgresDB) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{db: db}
}

// CreateInvoice inserts the invoice header
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	_, err := r.db.Querier(ctx).Exec(ctx, insertInvoiceSQL,
		invoice.Key.Number,
		invoice.Key.Series,
		invoice.IssuedAt,
		invoice.CustomerID,
		invoice.EmployeeID,
		invoice.BranchID,
		invoice.Total,
		invoice.Email,
	)
	if err != nil {
		return writeError(err, "failed to insert invoice", map[string]any{
			"noFactura":    invoice.Key.Number,
			"serieFactura": invoice.Key.Series,
		})
	}
	return nil
}

// CreateLineItem inserts one line of an invoice
func (r *PostgresInvoiceRepository) CreateLineItem(ctx context.Context, item *domain.LineItem) error {
	_, err := r.db.Querier(ctx).Exec(ctx, insertLineItemSQL,
		item.Sequence,
		item.Key.Number,
		item.Key.Series,
		item.ItemID,
		item.ReservationID,
		item.Cost,
		item.PurchasedAt,
		item.Location,
	)
	if err != nil {
		return writeError(err, "failed to insert invoice line item", map[string]any{
			"noFactura":    item.Key.Number,
			"serieFactura": item.Key.Series,
			"idDetalle":    item.Sequence,
		})
	}
	return nil
}

// GetInvoice retrieves one invoice header by its key
func (r *PostgresInvoiceRepository) GetInvoice(ctx context.Context, key domain.InvoiceKey) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.Querier(ctx).QueryRow(ctx, selectInvoiceSQL, key.Number, key.Series).Scan(
		&invoice.Key.Number,
		&invoice.Key.Series,
		&invoice.IssuedAt,
		&invoice.CustomerID,
		&invoice.EmployeeID,
		&invoice.BranchID,
		&invoice.Total,
		&invoice.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Factura con número %d y serie %s no encontrada.", key.Number, key.Series).
				Mark(ierr.ErrNotFound)
		}
		return nil, readError(err, "failed to get invoice")
	}

	return &invoice, nil
}

// ListInvoicesByCustomer retrieves the header summaries of a customer's invoices
func (r *PostgresInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.InvoiceSummary, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, selectInvoicesByCustomerSQL, customerID)
	if err != nil {
		return nil, readError(err, "failed to query invoices")
	}
	defer rows.Close()

	invoices := []domain.InvoiceSummary{}
	for rows.Next() {
		var s domain.InvoiceSummary
		if err := rows.Scan(&s.Key.Number, &s.Key.Series, &s.IssuedAt, &s.Total); err != nil {
			return nil, readError(err, "failed to scan invoice")
		}
		invoices = append(invoices, s)
	}

	if err := rows.Err(); err != nil {
		return nil, readError(err, "error iterating invoices")
	}

	return invoices, nil
}

// ListLineItemsByInvoice retrieves all line items of an invoice, ordered by sequence
func (r *PostgresInvoiceRepository) ListLineItemsByInvoice(ctx context.Context, key domain.InvoiceKey) ([]domain.LineItem, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, selectLineItemsByInvoiceSQL, key.Number, key.Series)
	if err != nil {
		return nil, readError(err, "failed to query invoice line items")
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		var item domain.LineItem
		err := rows.Scan(
			&item.Sequence,
			&item.Key.Number,
			&item.Key.Series,
			&item.ItemID,
			&item.ReservationID,
			&item.Cost,
			&item.PurchasedAt,
			&item.Location,
		)
		if err != nil {
			return nil, readError(err, "failed to scan invoice line item")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, readError(err, "error iterating invoice line items")
	}

	return items, nil
}

func writeError(err error, msg string, details map[string]any) error {
	hint := "Error al realizar la compra"
	if details == nil {
		details = map[string]any{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		details["constraint"] = pgErr.ConstraintName
		switch pgErr.Code {
		case pgUniqueViolation:
			hint = "La factura ya existe"
		case pgForeignKeyViolation:
			hint = "La factura referenciada no existe"
		}
	}

	return ierr.WithError(err).
		WithMessage(msg).
		WithHint(hint).
		WithReportableDetails(details).
		Mark(ierr.ErrPersistence)
}

func readError(err error, msg string) error {
	return ierr.WithError(err).
		WithMessage(msg).
		Mark(ierr.ErrPersistence)
}
