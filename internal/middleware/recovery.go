package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wartimekillers/snapxchange/internal/model"
)

// RecoveryMiddleware создает middleware для перехвата паник
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.String("panic", fmt.Sprint(recovered)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("client_ip", c.ClientIP()),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Something went wrong",
		})
	})
}
