package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/adisharma/job-tracker-api/internal/constants"
	apierrors "github.com/adisharma/job-tracker-api/internal/errors"
	"github.com/adisharma/job-tracker-api/internal/ratelimit"
)

// RateLimitMessage is the fixed reject response for blocked logins.
const RateLimitMessage = "Too many login attempts. Please try again later."

// ClientAddr identifies the requesting client: the first entry of
// X-Forwarded-For when present, otherwise the connection address.
func ClientAddr(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.ClientIP()
}

// LoginRateLimit blocks login requests from addresses with too many
// recent failures. It guards only the login route; the limiter decides
// before any credential check runs.
func LoginRateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := ClientAddr(c)
		if !limiter.Allow(c.Request.Context(), addr) {
			apierrors.TooManyRequests(c, RateLimitMessage)
			c.Abort()
			return
		}
		c.Set(constants.ContextKeyClientAddr, addr)
		c.Next()
	}
}
