package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware tags every request with a unique ID, honoring an
// incoming X-Request-ID header. The ID is mirrored into the Go context so
// logger.WithContext picks it up.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		ctx := context.WithValue(c.Request.Context(), RequestIDKey, id) //nolint:staticcheck // key shared with pkg/logger
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
