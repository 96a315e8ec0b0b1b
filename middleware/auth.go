package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth valida o bearer token contra a env API_KEY. Sem API_KEY
// configurada o acesso é liberado (conveniente em dev; configure em prod).
func APIKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(os.Getenv("API_KEY"))
		if apiKey == "" {
			c.Next()
			return
		}

		provided := strings.TrimSpace(c.GetHeader("Authorization"))
		provided = strings.TrimPrefix(provided, "Bearer ")

		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
			})
			return
		}
		c.Next()
	}
}
