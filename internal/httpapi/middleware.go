package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

const (
	headerRequestID = "X-Request-ID"
	headerUserID    = "X-User-ID"
	anonymousUser   = "anonymous"
)

// RequestLogger injects a request id into the request context and logs
// one line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), reqID))

		c.Next()

		log.Info(c.Request.Context(), "http_request method=%s path=%s status=%d latency_ms=%d client_ip=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Milliseconds(), c.ClientIP())
	}
}

func userID(c *gin.Context) string {
	if id := c.GetHeader(headerUserID); id != "" {
		return id
	}
	return anonymousUser
}
