package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSeries is the series every new invoice is issued under
const DefaultSeries = "A"

// InvoiceKey is the natural identifier of an invoice: number plus series
type InvoiceKey struct {
	Number int64
	Series string
}

// String renders the key as SERIES-NUMBER
func (k InvoiceKey) String() string {
	return fmt.Sprintf("%s-%d", k.Series, k.Number)
}

// ErrInvalidInvoiceNumber is returned by ParseInvoiceKey for non-integer numbers
var ErrInvalidInvoiceNumber = fmt.Errorf("invoice number must be a valid integer")

// ParseInvoiceKey builds a key from raw path values. The number must parse as
// a base-10 integer; the series is matched exactly and only checked for presence.
func ParseInvoiceKey(number, series string) (InvoiceKey, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(number), 10, 64)
	if err != nil {
		return InvoiceKey{}, ErrInvalidInvoiceNumber
	}
	if series == "" {
		return InvoiceKey{}, fmt.Errorf("invoice series is required")
	}
	return InvoiceKey{Number: n, Series: series}, nil
}

// Invoice is the header of one purchase
type Invoice struct {
	Key        InvoiceKey
	IssuedAt   time.Time
	CustomerID int64
	EmployeeID *int64
	BranchID   int64
	Total      decimal.Decimal
	Email      string
}

// InvoiceSummary is the header projection returned when listing a customer's invoices
type InvoiceSummary struct {
	Key      InvoiceKey
	IssuedAt time.Time
	Total    decimal.Decimal
}

// LineItem is one purchased product within an invoice. Sequence is 1-based
// and follows submission order.
type LineItem struct {
	Key           InvoiceKey
	Sequence      int
	ItemID        int64
	ReservationID *int64
	Cost          decimal.Decimal
	PurchasedAt   time.Time
	Location      string
}

// InvoiceDetail is a header together with its line items
type InvoiceDetail struct {
	Invoice Invoice
	Items   []LineItem
}

// PurchaseItem is one entry of a purchase request
type PurchaseItem struct {
	ItemID        int64           `json:"idAlimento" validate:"required,gt=0"`
	ReservationID *int64          `json:"noReserva,omitempty" validate:"omitempty"`
	Cost          decimal.Decimal `json:"costo" validate:"required,gt=0"`
	Location      string          `json:"lugarCompra" validate:"required,notblank"`
}

// PurchaseRequest is the input of the purchase transaction
type PurchaseRequest struct {
	CustomerID int64           `json:"idCliente" validate:"required,gt=0"`
	EmployeeID *int64          `json:"idEmpleado,omitempty" validate:"omitempty,gt=0"`
	BranchID   int64           `json:"idSucursal" validate:"required,gt=0"`
	Items      []PurchaseItem  `json:"productos" validate:"required,min=1"`
	Total      decimal.Decimal `json:"total" validate:"required,gt=0"`
	Email      string          `json:"correo" validate:"required,email"`
}

// NewInvoice builds the header for a freshly allocated number
func NewInvoice(key InvoiceKey, req *PurchaseRequest, issuedAt time.Time) *Invoice {
	return &Invoice{
		Key:        key,
		IssuedAt:   issuedAt,
		CustomerID: req.CustomerID,
		EmployeeID: req.EmployeeID,
		BranchID:   req.BranchID,
		Total:      req.Total,
		Email:      strings.TrimSpace(req.Email),
	}
}

// NewLineItem builds the line at the given 1-based position of the invoice
func NewLineItem(key InvoiceKey, sequence int, item PurchaseItem, purchasedAt time.Time) *LineItem {
	return &LineItem{
		Key:           key,
		Sequence:      sequence,
		ItemID:        item.ItemID,
		ReservationID: item.ReservationID,
		Cost:          item.Cost,
		PurchasedAt:   purchasedAt,
		Location:      item.Location,
	}
}

// Summary projects the header fields exposed by customer listings
func (i *Invoice) Summary() InvoiceSummary {
	return InvoiceSummary{
		Key:      i.Key,
		IssuedAt: i.IssuedAt,
		Total:    i.Total,
	}
}
