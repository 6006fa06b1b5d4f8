package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-api/pkg/response"
)

// RequireRoles allows the request through only when the authenticated user's
// role is one of the given roles. It must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == "" || !allowed[role] {
			response.AbortFail(c, http.StatusForbidden, "insufficient permissions", nil)
			return
		}
		c.Next()
	}
}
