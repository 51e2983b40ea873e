package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/canmap/canmap/pkg/config"
	"github.com/gin-gonic/gin"
)

// AuthRequired middleware checks the X-API-Key header against the
// configured token. With no token configured the check is disabled.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := config.AppConfig.Auth.APIToken
		if token == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
