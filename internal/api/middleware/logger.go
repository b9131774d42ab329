package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/logging"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// LoggerMiddleware tags every request with an id, stores a request-scoped logger
// in the request context and logs the outcome.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only well-formed UUIDs are echoed; anything else is replaced
		requestID := uuid.NewString()
		if id, err := uuid.Parse(c.GetHeader(HeaderRequestID)); err == nil {
			requestID = id.String()
		}
		c.Header(HeaderRequestID, requestID)

		reqLogger := logger.With("request_id", requestID)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), reqLogger))

		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("Request failed", attrs...)
		case c.Writer.Status() >= 400:
			reqLogger.Warn("Request rejected", attrs...)
		default:
			reqLogger.Info("Request finished", attrs...)
		}
	}
}
