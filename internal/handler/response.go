package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	ierr "github.com/ridwanfathin/invoice-purchase-service/internal/errors"
	"github.com/ridwanfathin/invoice-purchase-service/internal/model"
)

// HTTP status codes as constants for consistency
const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusBadRequest          = http.StatusBadRequest
	StatusNotFound            = http.StatusNotFound
	StatusInternalServerError = http.StatusInternalServerError
)

// Common error messages
const (
	ErrInvalidInput   = "Datos incompletos en la solicitud"
	ErrPurchaseFailed = "Error al realizar la compra"
	ErrQueryFailed    = "Error al consultar las facturas"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, message string, details ...model.ErrorDetail) {
	response := model.ErrorResponse{
		Status:  http.StatusText(statusCode),
		Message: message,
		Details: details,
	}
	c.JSON(statusCode, response)
}

// respondWithErr maps a marked error to its status and envelope. The
// innermost cause is only exposed on server errors.
func respondWithErr(c *gin.Context, err error, fallback string) {
	statusCode := ierr.HTTPStatusFromErr(err)
	response := model.ErrorResponse{
		Status:  http.StatusText(statusCode),
		Message: ierr.DisplayMessage(err, fallback),
		Details: newErrorDetails(ierr.ReportableDetails(err)),
	}
	if statusCode >= http.StatusInternalServerError {
		response.Error = ierr.Cause(err)
	}
	_ = c.Error(err)
	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...model.ErrorDetail) {
	respondWithError(c, StatusBadRequest, message, details...)
}

// respondSuccess sends a standardized success response with data
func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// respondCreated sends a 201 Created response with data
func respondCreated(c *gin.Context, data interface{}) {
	respondSuccess(c, StatusCreated, data)
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}) {
	respondSuccess(c, StatusOK, data)
}

// newErrorDetail creates a new error detail
func newErrorDetail(field, message string) model.ErrorDetail {
	return model.ErrorDetail{
		Field:   field,
		Message: message,
	}
}

// newErrorDetails flattens reportable details, sorted by field
func newErrorDetails(details map[string]any) []model.ErrorDetail {
	if len(details) == 0 {
		return nil
	}
	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]model.ErrorDetail, 0, len(fields))
	for _, field := range fields {
		message, ok := details[field].(string)
		if !ok {
			continue
		}
		out = append(out, newErrorDetail(field, message))
	}
	return out
}
