package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware создает middleware для CORS. API только читает, поэтому GET и OPTIONS.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Origin, Content-Type, Accept, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		// preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
