package httpmiddleware

import (
	"Sceptre/backend/go/pkg/circuitbreaker"
	"Sceptre/backend/go/pkg/ratelimiter"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RateLimit is a gin middleware that applies rate limiting to incoming requests.
func RateLimit(limiter ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// CircuitBreak is a gin middleware that applies the circuit breaker pattern
// to incoming requests. It considers HTTP status codes >= 500 as failures.
func CircuitBreak(breaker circuitbreaker.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := breaker.Execute(func() (interface{}, error) {
			c.Next()

			// Report server errors as failures to the circuit breaker.
			if status := c.Writer.Status(); status >= http.StatusInternalServerError {
				return nil, fmt.Errorf("server error: status code %d", status)
			}
			return nil, nil
		})

		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			// When the circuit is open the handler chain was never run.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable: circuit breaker is open"})
		}
		// Any other error was already written to the response by the handlers.
	}
}
