package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the context key holding the request id.
const RequestIDKey = "request_id"

const headerRequestID = "X-Request-ID"

// RequestID takes the request id from the X-Request-ID header when a
// proxy supplied one, or generates a UUID, and echoes it back on the
// response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}
