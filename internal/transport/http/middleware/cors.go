package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/pkg/httputil"
	"github.com/iamasit07/connect4/pkg/logger"
)

// CORSMiddleware lets the listed origins call the API. Requests without an
// Origin header (curl) and pages served by this host pass through.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	log := logger.Component("cors")
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" {
			if !allowed[origin] && !httputil.SameOrigin(origin, c.Request.Host) {
				log.Warn().Str("origin", origin).Strs("allowed", allowedOrigins).Msg("Origin not in allowed list")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
