package middleware

import (
	"strings"

	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity on the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, utils.KindUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, utils.KindUnauthorized, "Insufficient authorization")
			return
		}

		identity, err := utils.ExtractIdentity(tokenString)
		if err != nil {
			utils.GetLogger().Debug("Token rejected", zap.Error(err))
			utils.JSONError(c, utils.KindUnauthorized, "Invalid token")
			return
		}

		c.Set(CtxUserID, identity.UserID)
		c.Set(CtxRole, identity.Role)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by JWTAuthMiddleware.
func IdentityFrom(c *gin.Context) (utils.Identity, bool) {
	userID := c.GetString(CtxUserID)
	role := c.GetString(CtxRole)
	if userID == "" || role == "" {
		return utils.Identity{}, false
	}
	return utils.Identity{UserID: userID, Role: role}, true
}
