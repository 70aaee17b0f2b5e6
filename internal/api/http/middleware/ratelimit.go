package middleware

import (
	"net/http"
	"time"

	"github.com/ai-search-engine/search-backend/internal/ratelimit"
	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware rejects clients that exceed limiter with 429.
// A failing limiter lets the request through.
func RateLimitMiddleware(limiter ratelimit.Limiter, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Use IP address as the key for rate limiting
		clientIP := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			log.WithError(err).WithField("client_ip", clientIP).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		if !allowed {
			log.Warnf("Rate limit exceeded for IP: %s", clientIP)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		c.Next()
	}
}
