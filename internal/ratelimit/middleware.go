package ratelimit

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"auction-marketplace/internal/metrics"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// ErrRateLimited is reported to clients that exceed their request budget
var ErrRateLimited = errors.New("too many requests")

// Middleware rejects clients over their budget with 429. Counter store failures let the request through.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			utils.Warn("ratelimit: counter unavailable, allowing request", map[string]any{
				"client": c.ClientIP(),
				"error":  err.Error(),
			})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			metrics.RateLimited.Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			utils.AbortWithError(c, http.StatusTooManyRequests, ErrRateLimited, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
