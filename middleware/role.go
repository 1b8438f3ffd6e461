package middleware

import (
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only callers whose token carries one of roles. It
// must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			utils.JSONError(c, utils.KindUnauthorized, "Insufficient authorization")
			return
		}
		if !allowed[identity.Role] {
			utils.JSONError(c, utils.KindAuthorization, "Access denied for this role")
			return
		}
		c.Next()
	}
}
