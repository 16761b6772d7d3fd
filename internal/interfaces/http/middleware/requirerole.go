package middleware

import (
	"github.com/gin-gonic/gin"

	"remory/internal/shared/authorization"
	"remory/internal/shared/errors"
	"remory/internal/shared/utils"
)

// RequireRole rejects requests whose authenticated role does not match.
// Must run after AuthMiddleware.
func RequireRole(role authorization.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := authorization.UserRole(c.GetString(ContextRole))
		if current != role {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}
