package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/ridwanfathin/invoice-purchase-service/internal/repository"
	"github.com/ridwanfathin/invoice-purchase-service/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InvoiceQueryService defines the read side of invoicing. Raw path values are
// parsed here so malformed input never reaches storage.
type InvoiceQueryService interface {
	ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.InvoiceSummary, error)
	ListLineItemsByInvoice(ctx context.Context, number, series string) ([]domain.LineItem, error)
	GetInvoice(ctx context.Context, number, series string) (*domain.InvoiceDetail, error)
}

// InvoiceQueryServiceImpl implements InvoiceQueryService
type InvoiceQueryServiceImpl struct {
	repository repository.InvoiceRepository
	tracer     trace.Tracer
}

// NewInvoiceQueryService creates a new InvoiceQueryService
func NewInvoiceQueryService(repo repository.InvoiceRepository) InvoiceQueryService {
	return &InvoiceQueryServiceImpl{
		repository: repo,
		tracer:     tracing.Tracer(),
	}
}

// ListInvoicesByCustomer returns the invoice headers of a customer. An empty
// result is reported as not found.
func (s *InvoiceQueryServiceImpl) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.InvoiceSummary, error) {
	ctx, span := s.tracer.Start(ctx, "InvoiceQueryService.ListInvoicesByCustomer")
	defer span.End()

	id, err := strconv.ParseInt(strings.TrimSpace(customerID), 10, 64)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("El id del cliente debe ser un número válido").
			WithReportableDetails(map[string]any{"idCliente": "must be a valid integer"}).
			Mark(ierr.ErrValidation)
	}
	span.SetAttributes(attribute.Int64("customer.id", id))

	invoices, err := s.repository.ListInvoicesByCustomer(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, ierr.NewError("no invoices for customer").
			WithHintf("No se encontraron facturas para el cliente con id %s.", customerID).
			Mark(ierr.ErrNotFound)
	}
	return invoices, nil
}

// ListLineItemsByInvoice returns the lines of one invoice ordered by sequence
func (s *InvoiceQueryServiceImpl) ListLineItemsByInvoice(ctx context.Context, number, series string) ([]domain.LineItem, error) {
	ctx, span := s.tracer.Start(ctx, "InvoiceQueryService.ListLineItemsByInvoice")
	defer span.End()

	key, err := parseKey(number, series)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("invoice", key.String()))

	items, err := s.repository.ListLineItemsByInvoice(ctx, key)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("no line items for invoice").
			WithHintf("No se encontraron detalles para la factura con número %s y serie %s.", number, series).
			Mark(ierr.ErrNotFound)
	}
	return items, nil
}

// GetInvoice returns a header together with its line items
func (s *InvoiceQueryServiceImpl) GetInvoice(ctx context.Context, number, series string) (*domain.InvoiceDetail, error) {
	ctx, span := s.tracer.Start(ctx, "InvoiceQueryService.GetInvoice")
	defer span.End()

	key, err := parseKey(number, series)
	if err != nil {
		return nil, err
	}

	invoice, err := s.repository.GetInvoice(ctx, key)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	items, err := s.repository.ListLineItemsByInvoice(ctx, key)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	return &domain.InvoiceDetail{Invoice: *invoice, Items: items}, nil
}

func parseKey(number, series string) (domain.InvoiceKey, error) {
	key, err := domain.ParseInvoiceKey(number, series)
	if err == nil {
		return key, nil
	}

	hint := "La serie de la factura es obligatoria"
	field := "serieFactura"
	if ierr.Is(err, domain.ErrInvalidInvoiceNumber) {
		hint = "El número de factura debe ser un valor numérico válido."
		field = "noFactura"
	}
	return domain.InvoiceKey{}, ierr.WithError(err).
		WithHint(hint).
		WithReportableDetails(map[string]any{field: err.Error()}).
		Mark(ierr.ErrValidation)
}
