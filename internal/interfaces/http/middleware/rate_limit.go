package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "course-gate.backend/internal/domain/errors"
	"course-gate.backend/pkg/redis"
)

var (
	redisIncr   = redis.Incr
	redisExpire = redis.Expire
	redisDel    = redis.Del
)

// LoginRateLimitMiddleware caps login attempts per client IP using a Redis
// counter with a fixed window. Redis being down fails open so a cache outage
// never locks students out.
func LoginRateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("login_rate:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := redisIncr(ctx, key)
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			// First hit in the window owns the TTL. If setting it fails the
			// counter would never expire, so drop the key and fail open.
			if _, err := redisExpire(ctx, key, window); err != nil {
				_ = redisDel(ctx, key)
				c.Next()
				return
			}
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    domainerrors.CodeRateLimited,
				"message": "Too many login attempts, try again later",
			})
			return
		}

		c.Next()
	}
}
