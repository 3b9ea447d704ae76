package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
	"github.com/noah-isme/mrp-capacity-api/pkg/response"
)

// RequireRoles lets the request through when the caller holds one of roles.
// Admins are always allowed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles)+1)
	allowed[models.RoleAdmin] = struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role "+string(claims.Role)+" cannot perform this action"))
			c.Abort()
			return
		}
		c.Next()
	}
}
