package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const (
	// HeaderRequestID is read from and echoed back on every request
	HeaderRequestID = "X-Request-ID"

	ctxRequestID ctxKey = "ctx_request_id"
	ginRequestID        = "request_id"
)

// RequestID assigns every request an id, reusing the caller's X-Request-ID when present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxRequestID, requestID))
		c.Set(ginRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}

// GetRequestID returns the request id stored by RequestID, if any
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(ctxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// CORS allows browser clients from any origin to call the API
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", HeaderRequestID},
		ExposeHeaders:   []string{HeaderRequestID},
		MaxAge:          24 * time.Hour,
	})
}
