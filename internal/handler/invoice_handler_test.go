package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-purchase-service/internal/domain"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/ridwanfathin/invoice-purchase-service/internal/logger"
	"github.com/ridwanfathin/invoice-purchase-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) CreatePurchase(ctx context.Context, req *domain.PurchaseRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, req)
	invoice, _ := args.Get(0).(*domain.Invoice)
	return invoice, args.Error(1)
}

type MockInvoiceQueryService struct {
	mock.Mock
}

func (m *MockInvoiceQueryService) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.InvoiceSummary, error) {
	args := m.Called(ctx, customerID)
	invoices, _ := args.Get(0).([]domain.InvoiceSummary)
	return invoices, args.Error(1)
}

func (m *MockInvoiceQueryService) ListLineItemsByInvoice(ctx context.Context, number, series string) ([]domain.LineItem, error) {
	args := m.Called(ctx, number, series)
	items, _ := args.Get(0).([]domain.LineItem)
	return items, args.Error(1)
}

func (m *MockInvoiceQueryService) GetInvoice(ctx context.Context, number, series string) (*domain.InvoiceDetail, error) {
	args := m.Called(ctx, number, series)
	detail, _ := args.Get(0).(*domain.InvoiceDetail)
	return detail, args.Error(1)
}

func setupRouter(purchase *MockPurchaseService, query *MockInvoiceQueryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewInvoiceHandler(purchase, query, logger.NewNop()).RegisterRoutes(router)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const purchaseBody = `{
	"idCliente": 7,
	"idSucursal": 2,
	"total": 8,
	"correo": "a@b.com",
	"productos": [
		{"idAlimento": 10, "costo": 5, "lugarCompra": "L1"},
		{"idAlimento": 11, "costo": 3, "lugarCompra": "L2"}
	]
}`

func TestCreatePurchase_Created(t *testing.T) {
	purchase := new(MockPurchaseService)
	router := setupRouter(purchase, new(MockInvoiceQueryService))

	invoice := &domain.Invoice{
		Key:        domain.InvoiceKey{Number: 15, Series: "A"},
		IssuedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CustomerID: 7,
		BranchID:   2,
		Total:      decimal.NewFromInt(8),
		Email:      "a@b.com",
	}
	purchase.On("CreatePurchase", mock.Anything, mock.MatchedBy(func(req *domain.PurchaseRequest) bool {
		return req.CustomerID == 7 && len(req.Items) == 2 && req.Items[1].ItemID == 11 &&
			req.Items[0].Cost.Equal(decimal.NewFromInt(5))
	})).Return(invoice, nil)

	w := perform(router, http.MethodPost, "/carrito/compras", purchaseBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Compra realizada con éxito", resp.Message)
	assert.Equal(t, int64(15), resp.Invoice.Number)
	assert.Equal(t, "A", resp.Invoice.Series)
	purchase.AssertExpectations(t)
}

func TestCreatePurchase_MalformedJSON(t *testing.T) {
	purchase := new(MockPurchaseService)
	router := setupRouter(purchase, new(MockInvoiceQueryService))

	w := perform(router, http.MethodPost, "/carrito/compras", `{"idCliente": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrInvalidInput, decodeError(t, w).Message)
	purchase.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
}

func TestCreatePurchase_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
		exposesCause   bool
	}{
		{
			name: "validation",
			err: ierr.NewError("items empty").
				WithHint("Datos incompletos en la solicitud").
				WithReportableDetails(map[string]any{"productos": "must contain at least 1 element(s)"}).
				Mark(ierr.ErrValidation),
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Datos incompletos en la solicitud",
		},
		{
			name:           "allocation",
			err:            ierr.WithError(errors.New("sequence missing")).WithHint("Error al obtener el número de factura").Mark(ierr.ErrAllocation),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Error al obtener el número de factura",
			exposesCause:   true,
		},
		{
			name:           "persistence_without_hint",
			err:            ierr.WithError(errors.New("insert failed")).Mark(ierr.ErrPersistence),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    ErrPurchaseFailed,
			exposesCause:   true,
		},
		{
			name:           "unclassified",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    ErrPurchaseFailed,
			exposesCause:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			purchase := new(MockPurchaseService)
			router := setupRouter(purchase, new(MockInvoiceQueryService))
			purchase.On("CreatePurchase", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := perform(router, http.MethodPost, "/carrito/compras", purchaseBody)

			assert.Equal(t, tc.expectedStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tc.expectedMsg, resp.Message)
			if tc.exposesCause {
				assert.NotEmpty(t, resp.Error)
			} else {
				assert.Empty(t, resp.Error)
			}
		})
	}
}

func TestCreatePurchase_ValidationDetails(t *testing.T) {
	purchase := new(MockPurchaseService)
	router := setupRouter(purchase, new(MockInvoiceQueryService))
	purchase.On("CreatePurchase", mock.Anything, mock.Anything).Return(nil,
		ierr.NewError("invalid item").
			WithHint("Datos incompletos en los productos").
			WithReportableDetails(map[string]any{
				"productos[1].lugarCompra": "must not be blank",
				"productos[1].costo":       "is required",
			}).
			Mark(ierr.ErrValidation))

	w := perform(router, http.MethodPost, "/carrito/compras", purchaseBody)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "productos[1].costo", resp.Details[0].Field)
	assert.Equal(t, "productos[1].lugarCompra", resp.Details[1].Field)
}

func TestListInvoicesByCustomer(t *testing.T) {
	query := new(MockInvoiceQueryService)
	router := setupRouter(new(MockPurchaseService), query)
	query.On("ListInvoicesByCustomer", mock.Anything, "7").Return([]domain.InvoiceSummary{
		{Key: domain.InvoiceKey{Number: 1, Series: "A"}, Total: decimal.NewFromInt(8)},
		{Key: domain.InvoiceKey{Number: 4, Series: "A"}, Total: decimal.NewFromInt(3)},
	}, nil)

	w := perform(router, http.MethodGet, "/clientes/7/facturas", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.InvoiceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Invoices, 2)
	assert.Equal(t, int64(4), resp.Invoices[1].Number)
}

func TestListInvoicesByCustomer_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "not_found", err: ierr.NewError("none").WithHint("No se encontraron facturas para el cliente con id 7.").Mark(ierr.ErrNotFound), expectedStatus: http.StatusNotFound},
		{name: "invalid_id", err: ierr.NewError("bad id").Mark(ierr.ErrValidation), expectedStatus: http.StatusBadRequest},
		{name: "storage", err: ierr.WithError(errors.New("conn reset")).Mark(ierr.ErrPersistence), expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query := new(MockInvoiceQueryService)
			router := setupRouter(new(MockPurchaseService), query)
			query.On("ListInvoicesByCustomer", mock.Anything, "7").Return(nil, tc.err)

			w := perform(router, http.MethodGet, "/clientes/7/facturas", "")
			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestListLineItemsByInvoice(t *testing.T) {
	query := new(MockInvoiceQueryService)
	router := setupRouter(new(MockPurchaseService), query)
	key := domain.InvoiceKey{Number: 15, Series: "A"}
	query.On("ListLineItemsByInvoice", mock.Anything, "15", "A").Return([]domain.LineItem{
		{Key: key, Sequence: 1, ItemID: 10, Cost: decimal.NewFromInt(5), Location: "L1"},
		{Key: key, Sequence: 2, ItemID: 11, Cost: decimal.NewFromInt(3), Location: "L2"},
	}, nil)

	w := perform(router, http.MethodGet, "/detalle_factura/15/A", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.LineItemListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 1, resp.Items[0].Sequence)
	assert.Equal(t, 2, resp.Items[1].Sequence)
}

func TestListLineItemsByInvoice_NonNumericNumber(t *testing.T) {
	query := new(MockInvoiceQueryService)
	router := setupRouter(new(MockPurchaseService), query)
	query.On("ListLineItemsByInvoice", mock.Anything, "abc", "A").Return(nil,
		ierr.NewError("invalid number").
			WithHint("El número de factura debe ser un valor numérico válido.").
			Mark(ierr.ErrValidation))

	w := perform(router, http.MethodGet, "/detalle_factura/abc/A", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "El número de factura debe ser un valor numérico válido.", decodeError(t, w).Message)
}

func TestListLineItemsByInvoice_NotFound(t *testing.T) {
	query := new(MockInvoiceQueryService)
	router := setupRouter(new(MockPurchaseService), query)
	query.On("ListLineItemsByInvoice", mock.Anything, "99", "A").Return(nil,
		ierr.NewError("none").Mark(ierr.ErrNotFound))

	w := perform(router, http.MethodGet, "/detalle_factura/99/A", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, decodeError(t, w).Error)
}

func TestGetInvoice(t *testing.T) {
	query := new(MockInvoiceQueryService)
	router := setupRouter(new(MockPurchaseService), query)
	key := domain.InvoiceKey{Number: 15, Series: "A"}
	query.On("GetInvoice", mock.Anything, "15", "A").Return(&domain.InvoiceDetail{
		Invoice: domain.Invoice{Key: key, CustomerID: 7, BranchID: 2, Total: decimal.NewFromInt(8), Email: "a@b.com"},
		Items:   []domain.LineItem{{Key: key, Sequence: 1, ItemID: 10, Cost: decimal.NewFromInt(8), Location: "L1"}},
	}, nil)

	w := perform(router, http.MethodGet, "/facturas/15/A", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.InvoiceDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Invoice.CustomerID)
	assert.Len(t, resp.Items, 1)
}
