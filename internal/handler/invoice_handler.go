package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	"github.com/ridwanfathin/invoice-purchase-service/internal/logger"
	"github.com/ridwanfathin/invoice-purchase-service/internal/model"
	"github.com/ridwanfathin/invoice-purchase-service/internal/service"
)

// InvoiceHandler handles HTTP requests for purchases and invoice queries
type InvoiceHandler struct {
	purchaseService service.PurchaseService
	queryService    service.InvoiceQueryService
	logger          *logger.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(purchaseService service.PurchaseService, queryService service.InvoiceQueryService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		purchaseService: purchaseService,
		queryService:    queryService,
		logger:          log,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/carrito/compras", h.CreatePurchase)
	router.GET("/clientes/:idCliente/facturas", h.ListInvoicesByCustomer)
	router.GET("/detalle_factura/:noFactura/:serieFactura", h.ListLineItemsByInvoice)
	router.GET("/facturas/:noFactura/:serieFactura", h.GetInvoice)
}

// CreatePurchase handles the POST /carrito/compras endpoint
// @Summary Register a purchase
// @Description Allocates an invoice number and stores the invoice with all its line items atomically
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body domain.PurchaseRequest true "Purchase data"
// @Success 201 {object} model.PurchaseResponse "Purchase registered"
// @Failure 400 {object} model.ErrorResponse "Incomplete or invalid request"
// @Failure 500 {object} model.ErrorResponse "Purchase rolled back"
// @Router /carrito/compras [post]
func (h *InvoiceHandler) CreatePurchase(c *gin.Context) {
	var input domain.PurchaseRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", err.Error()))
		return
	}

	invoice, err := h.purchaseService.CreatePurchase(c.Request.Context(), &input)
	if err != nil {
		h.logger.Warnw("purchase failed", "customer_id", input.CustomerID, "error", err)
		respondWithErr(c, err, ErrPurchaseFailed)
		return
	}

	respondCreated(c, model.PurchaseResponse{
		Message: "Compra realizada con éxito",
		Invoice: model.NewInvoiceResponse(invoice),
	})
}

// ListInvoicesByCustomer handles the GET /clientes/:idCliente/facturas endpoint
// @Summary List a customer's invoices
// @Tags invoices
// @Produce json
// @Param idCliente path int true "Customer ID"
// @Success 200 {object} model.InvoiceListResponse
// @Failure 400 {object} model.ErrorResponse "Invalid customer id"
// @Failure 404 {object} model.ErrorResponse "No invoices"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /clientes/{idCliente}/facturas [get]
func (h *InvoiceHandler) ListInvoicesByCustomer(c *gin.Context) {
	customerID, err := getPathParam(c, "idCliente")
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("idCliente", err.Error()))
		return
	}

	invoices, err := h.queryService.ListInvoicesByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondWithErr(c, err, "Error al obtener las facturas")
		return
	}

	respondOK(c, model.InvoiceListResponse{
		Message:  fmt.Sprintf("Facturas para el cliente con id %s obtenidas exitosamente.", customerID),
		Invoices: model.NewInvoiceSummaryResponses(invoices),
	})
}

// ListLineItemsByInvoice handles the GET /detalle_factura/:noFactura/:serieFactura endpoint
// @Summary List the line items of an invoice
// @Tags invoices
// @Produce json
// @Param noFactura path int true "Invoice number"
// @Param serieFactura path string true "Invoice series"
// @Success 200 {object} model.LineItemListResponse
// @Failure 400 {object} model.ErrorResponse "Invoice number is not numeric"
// @Failure 404 {object} model.ErrorResponse "No line items"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /detalle_factura/{noFactura}/{serieFactura} [get]
func (h *InvoiceHandler) ListLineItemsByInvoice(c *gin.Context) {
	number, series := c.Param("noFactura"), c.Param("serieFactura")

	items, err := h.queryService.ListLineItemsByInvoice(c.Request.Context(), number, series)
	if err != nil {
		respondWithErr(c, err, "Ocurrió un error al obtener los detalles de la factura.")
		return
	}

	respondOK(c, model.LineItemListResponse{
		Message: fmt.Sprintf("Detalles de la factura con número %s y serie %s obtenidos exitosamente.", number, series),
		Items:   model.NewLineItemResponses(items),
	})
}

// GetInvoice handles the GET /facturas/:noFactura/:serieFactura endpoint
// @Summary Get an invoice with its line items
// @Tags invoices
// @Produce json
// @Param noFactura path int true "Invoice number"
// @Param serieFactura path string true "Invoice series"
// @Success 200 {object} model.InvoiceDetailResponse
// @Failure 400 {object} model.ErrorResponse "Invoice number is not numeric"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /facturas/{noFactura}/{serieFactura} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	number, series := c.Param("noFactura"), c.Param("serieFactura")

	detail, err := h.queryService.GetInvoice(c.Request.Context(), number, series)
	if err != nil {
		respondWithErr(c, err, "Error al obtener la factura")
		return
	}

	respondOK(c, model.InvoiceDetailResponse{
		Message: fmt.Sprintf("Factura con número %s y serie %s obtenida exitosamente.", number, series),
		Invoice: model.NewInvoiceResponse(&detail.Invoice),
		Items:   model.NewLineItemResponses(detail.Items),
	})
}
