package model

import (
	"time"

	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InvoiceResponse is the wire form of an invoice header
type InvoiceResponse struct {
	Number     int64           `json:"noFactura"`
	Series     string          `json:"serieFactura"`
	IssuedAt   time.Time       `json:"fechaFactura"`
	CustomerID int64           `json:"idCliente"`
	EmployeeID *int64          `json:"idEmpleado,omitempty"`
	BranchID   int64           `json:"idSucursal"`
	Total      decimal.Decimal `json:"total" swaggertype:"string"`
	Email      string          `json:"correo"`
}

// InvoiceSummaryResponse is one entry of a customer's invoice list
type InvoiceSummaryResponse struct {
	Number   int64           `json:"noFactura"`
	Series   string          `json:"serieFactura"`
	IssuedAt time.Time       `json:"fechaFactura"`
	Total    decimal.Decimal `json:"total" swaggertype:"string"`
}

// LineItemResponse is the wire form of one invoice line
type LineItemResponse struct {
	Sequence      int             `json:"idDetalle"`
	Number        int64           `json:"noFactura"`
	Series        string          `json:"serieFactura"`
	ItemID        int64           `json:"idAlimento"`
	ReservationID *int64          `json:"noReserva,omitempty"`
	Cost          decimal.Decimal `json:"costo" swaggertype:"string"`
	PurchasedAt   time.Time       `json:"fechaCompra"`
	Location      string          `json:"lugarCompra"`
}

// PurchaseResponse is returned after a committed purchase
type PurchaseResponse struct {
	Message string          `json:"message"`
	Invoice InvoiceResponse `json:"factura"`
}

// InvoiceListResponse wraps the invoices of a customer
type InvoiceListResponse struct {
	Message  string                   `json:"message"`
	Invoices []InvoiceSummaryResponse `json:"facturas"`
}

// LineItemListResponse wraps the lines of an invoice
type LineItemListResponse struct {
	Message string             `json:"message"`
	Items   []LineItemResponse `json:"detalles"`
}

// InvoiceDetailResponse is a header with its lines
type InvoiceDetailResponse struct {
	Message string             `json:"message"`
	Invoice InvoiceResponse    `json:"factura"`
	Items   []LineItemResponse `json:"detalles"`
}

// NewInvoiceResponse converts a domain invoice
func NewInvoiceResponse(invoice *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		Number:     invoice.Key.Number,
		Series:     invoice.Key.Series,
		IssuedAt:   invoice.IssuedAt,
		CustomerID: invoice.CustomerID,
		EmployeeID: invoice.EmployeeID,
		BranchID:   invoice.BranchID,
		Total:      invoice.Total,
		Email:      invoice.Email,
	}
}

// NewInvoiceSummaryResponses converts a customer's invoice list
func NewInvoiceSummaryResponses(invoices []domain.InvoiceSummary) []InvoiceSummaryResponse {
	return lo.Map(invoices, func(inv domain.InvoiceSummary, _ int) InvoiceSummaryResponse {
		return InvoiceSummaryResponse{
			Number:   inv.Key.Number,
			Series:   inv.Key.Series,
			IssuedAt: inv.IssuedAt,
			Total:    inv.Total,
		}
	})
}

// NewLineItemResponses converts invoice lines, keeping their order
func NewLineItemResponses(items []domain.LineItem) []LineItemResponse {
	return lo.Map(items, func(item domain.LineItem, _ int) LineItemResponse {
		return LineItemResponse{
			Sequence:      item.Sequence,
			Number:        item.Key.Number,
			Series:        item.Key.Series,
			ItemID:        item.ItemID,
			ReservationID: item.ReservationID,
			Cost:          item.Cost,
			PurchasedAt:   item.PurchasedAt,
			Location:      item.Location,
		}
	})
}
