package handlers

import (
	"net/http"

	"slotbook/middleware"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// respond writes the standard success envelope.
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

// identity returns the caller set by the auth middleware, aborting with 401
// when it is missing.
func identity(c *gin.Context) (utils.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		utils.JSONError(c, utils.KindUnauthorized, "Insufficient authorization")
		return utils.Identity{}, false
	}
	return id, true
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request payload", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{
			Error:   utils.KindValidation,
			Message: "Invalid request payload",
		})
		return false
	}
	return true
}
