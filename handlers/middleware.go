package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nft-tickets-backend/metrics"
)

// callerKey is the gin context key holding the authenticated wallet address.
const callerKey = "caller_address"

// TokenVerifier validates a session token and returns the address it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth gates a route group on a valid bearer session token. The
// normalized address ends up in the request context for handlers.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		address, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(callerKey, address)
		c.Next()
	}
}

// CallerAddress returns the wallet address set by RequireAuth.
func CallerAddress(c *gin.Context) string {
	return c.GetString(callerKey)
}

// RequestLogger logs each request with a generated request id and feeds the
// Prometheus request counters.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		elapsed := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.Observe(elapsed.Seconds())

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", elapsed).
			Msg("request")
	}
}
