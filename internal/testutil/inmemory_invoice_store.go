package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ridwanfathin/invoice-purchase-service/internal/database"
	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/ridwanfathin/invoice-purchase-service/internal/repository"
)

var (
	_ repository.InvoiceRepository = (*InMemoryInvoiceStore)(nil)
	_ repository.SequenceAllocator = (*InMemoryInvoiceStore)(nil)
	_ database.Transactor          = (*InMemoryInvoiceStore)(nil)
)

type memTxKey struct{}

// memTx stages writes until commit
type memTx struct {
	invoices []domain.Invoice
	items    []domain.LineItem
}

// InMemoryInvoiceStore is a transactional in-memory stand-in for the
// PostgreSQL sequence, invoice tables and transaction manager. Writes made
// inside WithTx are only visible after the function returns nil.
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	sequence int64
	invoices map[domain.InvoiceKey]domain.Invoice
	items    map[domain.InvoiceKey][]domain.LineItem

	// Failure injection
	SequenceErr      error
	InvoiceInsertErr error
	// LineItemInsertErr is returned when inserting the line numbered FailLineItemSequence
	LineItemInsertErr    error
	FailLineItemSequence int
	QueryErr             error

	// Observability for assertions
	Allocated []int64
	Commits   int
	Rollbacks int
}

// NewInMemoryInvoiceStore creates an empty store whose sequence starts at 1
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[domain.InvoiceKey]domain.Invoice),
		items:    make(map[domain.InvoiceKey][]domain.LineItem),
	}
}

// NextInvoiceNumber increments the shared counter. Like a database sequence,
// it is not affected by transaction rollback.
func (s *InMemoryInvoiceStore) NextInvoiceNumber(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SequenceErr != nil {
		return 0, ierr.WithError(s.SequenceErr).
			WithHint("Error al obtener el número de factura").
			Mark(ierr.ErrAllocation)
	}

	s.sequence++
	s.Allocated = append(s.Allocated, s.sequence)
	return s.sequence, nil
}

// WithTx stages every write made through the context and applies them
// atomically when fn succeeds.
func (s *InMemoryInvoiceStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		return fn(ctx)
	}

	tx := &memTx{}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		s.mu.Lock()
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkConstraints(tx); err != nil {
		s.Rollbacks++
		return err
	}

	for _, inv := range tx.invoices {
		s.invoices[inv.Key] = inv
	}
	for _, item := range tx.items {
		s.items[item.Key] = append(s.items[item.Key], item)
	}
	s.Commits++
	return nil
}

func (s *InMemoryInvoiceStore) checkConstraints(tx *memTx) error {
	staged := make(map[domain.InvoiceKey]bool, len(tx.invoices))
	for _, inv := range tx.invoices {
		if _, exists := s.invoices[inv.Key]; exists || staged[inv.Key] {
			return persistenceErr(fmt.Errorf("duplicate key %s", inv.Key))
		}
		staged[inv.Key] = true
	}
	for _, item := range tx.items {
		if _, exists := s.invoices[item.Key]; !exists && !staged[item.Key] {
			return persistenceErr(fmt.Errorf("line item references missing invoice %s", item.Key))
		}
	}
	return nil
}

// CreateInvoice stores or stages an invoice header
func (s *InMemoryInvoiceStore) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	if invoice == nil {
		return fmt.Errorf("invoice cannot be nil")
	}
	if s.InvoiceInsertErr != nil {
		return persistenceErr(s.InvoiceInsertErr)
	}

	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		tx.invoices = append(tx.invoices, *invoice)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.invoices[invoice.Key]; exists {
		return persistenceErr(fmt.Errorf("duplicate key %s", invoice.Key))
	}
	s.invoices[invoice.Key] = *invoice
	return nil
}

// CreateLineItem stores or stages one line item
func (s *InMemoryInvoiceStore) CreateLineItem(ctx context.Context, item *domain.LineItem) error {
	if item == nil {
		return fmt.Errorf("line item cannot be nil")
	}
	if s.LineItemInsertErr != nil && item.Sequence == s.FailLineItemSequence {
		return persistenceErr(s.LineItemInsertErr)
	}

	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		tx.items = append(tx.items, *item)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.invoices[item.Key]; !exists {
		return persistenceErr(fmt.Errorf("line item references missing invoice %s", item.Key))
	}
	s.items[item.Key] = append(s.items[item.Key], *item)
	return nil
}

// GetInvoice returns a committed invoice header
func (s *InMemoryInvoiceStore) GetInvoice(ctx context.Context, key domain.InvoiceKey) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.QueryErr != nil {
		return nil, persistenceErr(s.QueryErr)
	}

	inv, ok := s.invoices[key]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Factura con número %d y serie %s no encontrada.", key.Number, key.Series).
			Mark(ierr.ErrNotFound)
	}
	return &inv, nil
}

// ListInvoicesByCustomer returns committed header summaries for a customer
func (s *InMemoryInvoiceStore) ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.InvoiceSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.QueryErr != nil {
		return nil, persistenceErr(s.QueryErr)
	}

	result := []domain.InvoiceSummary{}
	for _, inv := range s.invoices {
		if inv.CustomerID == customerID {
			result = append(result, inv.Summary())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key.Number < result[j].Key.Number })
	return result, nil
}

// ListLineItemsByInvoice returns committed line items ordered by sequence
func (s *InMemoryInvoiceStore) ListLineItemsByInvoice(ctx context.Context, key domain.InvoiceKey) ([]domain.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.QueryErr != nil {
		return nil, persistenceErr(s.QueryErr)
	}

	result := append([]domain.LineItem{}, s.items[key]...)
	sort.Slice(result, func(i, j int) bool { return result[i].Sequence < result[j].Sequence })
	return result, nil
}

// InvoiceCount returns the number of committed invoice headers
func (s *InMemoryInvoiceStore) InvoiceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}

// LineItemCount returns the number of committed line items across all invoices
func (s *InMemoryInvoiceStore) LineItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, items := range s.items {
		n += len(items)
	}
	return n
}

func persistenceErr(err error) error {
	return ierr.WithError(err).
		WithHint("Error al realizar la compra").
		Mark(ierr.ErrPersistence)
}
