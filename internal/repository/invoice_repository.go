package repository

import (
	"context"

	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
)

// SequenceAllocator hands out invoice numbers from a system-wide atomic sequence
type SequenceAllocator interface {
	// NextInvoiceNumber returns a fresh, strictly increasing number. Values are
	// never handed out twice, even when the caller's transaction rolls back.
	NextInvoiceNumber(ctx context.Context) (int64, error)
}

// InvoiceRepository defines the interface for invoice data storage operations.
// Writes join the transaction carried by ctx, if any.
type InvoiceRepository interface {
	// Write operations
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error
	CreateLineItem(ctx context.Context, item *domain.LineItem) error

	// Query operations; an empty result is not an error at this layer
	GetInvoice(ctx context.Context, key domain.InvoiceKey) (*domain.Invoice, error)
	ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.InvoiceSummary, error)
	ListLineItemsByInvoice(ctx context.Context, key domain.InvoiceKey) ([]domain.LineItem, error)
}
