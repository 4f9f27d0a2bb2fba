package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextRequestID is the context key the access logger reads.
	ContextRequestID = "request_id"
	headerRequestID  = "X-Request-ID"
)

// RequestID tags every request with an ID, honoring one supplied by a proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ContextRequestID, rid)
		c.Writer.Header().Set(headerRequestID, rid)
		c.Next()
	}
}
