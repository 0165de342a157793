package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lumarise-backend/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags the request context with a request id and logs the
// start and completion of every request.
func RequestLogger(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := logg.WithRequestID(c.Request.Context(), requestID)
		ctx = logg.WithFields(ctx, map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(ctx)

		logg.Debug(ctx, "request.start")
		c.Next()

		done := logg.WithFields(ctx, map[string]any{
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		})
		if c.Writer.Status() >= 500 {
			logg.Warn(done, "request.complete", nil)
			return
		}
		logg.Info(done, "request.complete")
	}
}
