package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ridwanfathin/invoice-purchase-service/internal/database"
	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/ridwanfathin/invoice-purchase-service/internal/logger"
	"github.com/ridwanfathin/invoice-purchase-service/internal/repository"
	"github.com/ridwanfathin/invoice-purchase-service/internal/tracing"
	"github.com/ridwanfathin/invoice-purchase-service/internal/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const itemsHint = "Datos incompletos en los productos"

// PurchaseService defines the purchase transaction
type PurchaseService interface {
	CreatePurchase(ctx context.Context, req *domain.PurchaseRequest) (*domain.Invoice, error)
}

// PurchaseServiceImpl implements PurchaseService
type PurchaseServiceImpl struct {
	allocator  repository.SequenceAllocator
	repository repository.InvoiceRepository
	transactor database.Transactor
	logger     *logger.Logger
	tracer     trace.Tracer
	series     string
	now        func() time.Time
}

// PurchaseOption customizes a PurchaseServiceImpl
type PurchaseOption func(*PurchaseServiceImpl)

// WithSeries overrides the series new invoices are issued under
func WithSeries(series string) PurchaseOption {
	return func(s *PurchaseServiceImpl) {
		if series != "" {
			s.series = series
		}
	}
}

// WithClock overrides the time source used for invoice and line timestamps
func WithClock(now func() time.Time) PurchaseOption {
	return func(s *PurchaseServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	allocator repository.SequenceAllocator,
	repo repository.InvoiceRepository,
	transactor database.Transactor,
	log *logger.Logger,
	opts ...PurchaseOption,
) PurchaseService {
	s := &PurchaseServiceImpl{
		allocator:  allocator,
		repository: repo,
		transactor: transactor,
		logger:     log,
		tracer:     tracing.Tracer(),
		series:     domain.DefaultSeries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePurchase allocates an invoice number and writes the header and every
// line item in one transaction. Line sequences run 1..N in request order.
// The number is consumed even when the transaction rolls back.
func (s *PurchaseServiceImpl) CreatePurchase(ctx context.Context, req *domain.PurchaseRequest) (*domain.Invoice, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseService.CreatePurchase")
	defer span.End()

	if req == nil {
		err := ierr.NewError("purchase request is nil").
			WithHint(validator.DefaultHint).
			Mark(ierr.ErrValidation)
		recordError(span, err)
		return nil, err
	}

	if err := validator.ValidateRequest(req); err != nil {
		recordError(span, err)
		return nil, err
	}

	number, err := s.allocator.NextInvoiceNumber(ctx)
	if err != nil {
		s.logger.Errorw("failed to allocate invoice number", "error", err)
		recordError(span, err)
		return nil, err
	}

	key := domain.InvoiceKey{Number: number, Series: s.series}
	span.SetAttributes(
		attribute.Int64("invoice.number", key.Number),
		attribute.String("invoice.series", key.Series),
		attribute.Int("invoice.items", len(req.Items)),
	)
	log := s.logger.With("invoice", key.String(), "customer_id", req.CustomerID)

	invoice := domain.NewInvoice(key, req, s.now())

	err = s.transactor.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repository.CreateInvoice(ctx, invoice); err != nil {
			return err
		}

		for i, item := range req.Items {
			if err := validator.ValidateWithHint(&item, fmt.Sprintf("productos[%d]", i), itemsHint); err != nil {
				return err
			}
			if err := s.repository.CreateLineItem(ctx, domain.NewLineItem(key, i+1, item, s.now())); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !ierr.IsValidation(err) && !ierr.IsPersistence(err) {
			err = ierr.WithError(err).
				WithHint("Error al realizar la compra").
				Mark(ierr.ErrPersistence)
		}
		log.Errorw("purchase rolled back", "error", err)
		recordError(span, err)
		return nil, err
	}

	log.Infow("purchase committed", "items", len(req.Items), "total", invoice.Total.String())
	return invoice, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
