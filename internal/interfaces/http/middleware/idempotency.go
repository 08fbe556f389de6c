package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/infrastructure/logger"
	"github.com/rationshop/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client's retry key
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds client-supplied keys
const MaxIdempotencyKeyLength = 255

const releaseTimeout = 5 * time.Second

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	TTL   time.Duration
}

// Idempotency claims the request's Idempotency-Key for the caller before the
// handler runs. A key that is in flight or already succeeded is refused with 409.
// When the handler fails the claim is released so the same key can be retried.
// Requests without the header pass through.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Idempotency-Key is too long")
			return
		}

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		scoped := c.Request.Method + ":" + c.FullPath() + ":" + GetJWTUserID(c) + ":" + key

		claimed, err := cfg.Store.MarkProcessed(ctx, scoped, cfg.TTL)
		if err != nil {
			// Store outage: serve the request without duplicate detection
			log.Warn("idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			abortWithError(c, http.StatusConflict, dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already received")
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			// The client may have gone away; the key must still be freed.
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			if err := cfg.Store.Release(releaseCtx, scoped); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
			cancel()
		}
	}
}
