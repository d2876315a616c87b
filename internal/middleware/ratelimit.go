package middleware

import (
	"strconv"

	"url-shortener-api/internal/apperror"
	"url-shortener-api/internal/ratelimit"
	"url-shortener-api/internal/response"

	"github.com/gin-gonic/gin"
)

// IdentityFunc returns the rate-limit key for a request. An empty string
// falls into the shared "unknown" bucket.
type IdentityFunc func(c *gin.Context) string

// ClientIP keys requests by gin's resolved client address, which honours
// forwarding headers only from trusted proxies.
func ClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// RateLimit applies policy to every request passing through it. Limit headers
// are written on every response; denied requests get 429, Retry-After and the
// policy's message and code.
func RateLimit(policy *ratelimit.Policy, identity IdentityFunc) gin.HandlerFunc {
	if identity == nil {
		identity = ClientIP
	}
	return func(c *gin.Context) {
		dec := policy.Evaluate(identity(c))

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(dec.Reset, 10))

		if !dec.Allowed {
			h.Set("Retry-After", strconv.FormatInt(dec.RetryAfter, 10))
			response.Error(c, apperror.RateLimited(dec.Message, dec.Code))
			return
		}

		c.Next()
	}
}
