package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"refpool.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the lock is held while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long the cached response is kept
	RetentionDuration = 24 * time.Hour
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware makes money-moving requests safe to retry. A request
// carrying an Idempotency-Key is processed at most once per caller wallet:
// concurrent duplicates get 409, later duplicates get the cached response.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		// Scope keys by caller so wallets cannot replay each other.
		wallet, _ := GetWallet(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", wallet.Hex(), key)

		ctx := c.Request.Context()
		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == "processing" {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
					"code":  "ERR_IDEMPOTENCY_CONFLICT",
				})
				return
			}

			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(http.StatusOK, val)
			c.Abort()
			return
		} else if !errors.Is(err, redis.Nil) {
			// redis unavailable, process without the guarantee
			c.Next()
			return
		}

		success, err := redisSetNX(ctx, storageKey, "processing", LockDuration)
		if err != nil || !success {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Cache only successful outcomes; failures release the key so the
		// caller can retry.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redisSet(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			_ = redisDel(ctx, storageKey)
		}
	}
}
