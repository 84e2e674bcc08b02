package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/ridwanfathin/invoice-purchase-service/internal/logger"
	"github.com/ridwanfathin/invoice-purchase-service/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceQueryServiceSuite struct {
	suite.Suite
	ctx      context.Context
	store    *testutil.InMemoryInvoiceStore
	purchase PurchaseService
	service  InvoiceQueryService
}

func TestInvoiceQueryService(t *testing.T) {
	suite.Run(t, new(InvoiceQueryServiceSuite))
}

func (s *InvoiceQueryServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewInMemoryInvoiceStore()
	s.purchase = NewPurchaseService(s.store, s.store, s.store, logger.NewNop(),
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }))
	s.service = NewInvoiceQueryService(s.store)
}

func (s *InvoiceQueryServiceSuite) seed(customerID int64, items ...domain.PurchaseItem) *domain.Invoice {
	req := purchaseRequest(items...)
	req.CustomerID = customerID
	invoice, err := s.purchase.CreatePurchase(s.ctx, req)
	s.Require().NoError(err)
	return invoice
}

func (s *InvoiceQueryServiceSuite) TestListInvoicesByCustomer() {
	s.seed(7, item(10, 5, "L1"))
	s.seed(8, item(10, 5, "L1"))
	s.seed(7, item(11, 3, "L2"))

	invoices, err := s.service.ListInvoicesByCustomer(s.ctx, "7")
	s.Require().NoError(err)
	s.Require().Len(invoices, 2)
	s.Equal(int64(1), invoices[0].Key.Number)
	s.Equal(int64(3), invoices[1].Key.Number)
	s.True(decimal.NewFromInt(8).Equal(invoices[0].Total))
}

func (s *InvoiceQueryServiceSuite) TestListInvoicesByCustomer_NotFound() {
	s.seed(7, item(10, 5, "L1"))

	_, err := s.service.ListInvoicesByCustomer(s.ctx, "999")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
	s.Equal("No se encontraron facturas para el cliente con id 999.", ierr.DisplayMessage(err, ""))
}

func (s *InvoiceQueryServiceSuite) TestListInvoicesByCustomer_InvalidID() {
	s.store.QueryErr = errors.New("must not be queried")

	_, err := s.service.ListInvoicesByCustomer(s.ctx, "abc")
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Contains(ierr.ReportableDetails(err), "idCliente")
}

func (s *InvoiceQueryServiceSuite) TestListInvoicesByCustomer_StorageFailure() {
	s.store.QueryErr = errors.New("connection reset")

	_, err := s.service.ListInvoicesByCustomer(s.ctx, "7")
	s.Require().Error(err)
	s.True(ierr.IsPersistence(err))
}

func (s *InvoiceQueryServiceSuite) TestListLineItemsByInvoice() {
	invoice := s.seed(7, item(10, 5, "L1"), item(11, 3, "L2"))

	items, err := s.service.ListLineItemsByInvoice(s.ctx, "1", "A")
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(invoice.Key, items[0].Key)
	s.Equal(1, items[0].Sequence)
	s.Equal(2, items[1].Sequence)
}

func (s *InvoiceQueryServiceSuite) TestListLineItemsByInvoice_NotFound() {
	s.seed(7, item(10, 5, "L1"))

	testCases := []struct {
		name   string
		number string
		series string
	}{
		{name: "unknown_number", number: "42", series: "A"},
		{name: "series_is_case_sensitive", number: "1", series: "a"},
		{name: "unknown_series", number: "1", series: "B"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.ListLineItemsByInvoice(s.ctx, tc.number, tc.series)
			s.Require().Error(err)
			s.True(ierr.IsNotFound(err))
		})
	}
}

func (s *InvoiceQueryServiceSuite) TestListLineItemsByInvoice_NonNumericNumberIsRejectedBeforeQuery() {
	s.store.QueryErr = errors.New("must not be queried")

	for _, number := range []string{"abc", "1.5", "", "12x"} {
		_, err := s.service.ListLineItemsByInvoice(s.ctx, number, "A")
		s.Require().Error(err, number)
		s.True(ierr.IsValidation(err), number)
		s.False(ierr.IsPersistence(err), number)
		s.Contains(ierr.ReportableDetails(err), "noFactura")
	}
}

func (s *InvoiceQueryServiceSuite) TestListLineItemsByInvoice_MissingSeries() {
	_, err := s.service.ListLineItemsByInvoice(s.ctx, "1", "")
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Contains(ierr.ReportableDetails(err), "serieFactura")
}

func (s *InvoiceQueryServiceSuite) TestGetInvoice() {
	invoice := s.seed(7, item(10, 5, "L1"), item(11, 3, "L2"))

	detail, err := s.service.GetInvoice(s.ctx, "1", "A")
	s.Require().NoError(err)
	s.Equal(invoice.Key, detail.Invoice.Key)
	s.Equal("a@b.com", detail.Invoice.Email)
	s.Len(detail.Items, 2)
}

func (s *InvoiceQueryServiceSuite) TestGetInvoice_NotFound() {
	_, err := s.service.GetInvoice(s.ctx, "5", "A")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
	s.Equal("Factura con número 5 y serie A no encontrada.", ierr.DisplayMessage(err, ""))
}

func (s *InvoiceQueryServiceSuite) TestGetInvoice_InvalidNumber() {
	_, err := s.service.GetInvoice(s.ctx, "x", "A")
	s.True(ierr.IsValidation(err))
}
