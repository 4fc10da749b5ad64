package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleRider    Role = "RIDER"
)

// Principal is the authenticated caller, materialized by the upstream auth
// layer. The core never authenticates; it only consumes the identity.
type Principal struct {
	ID   uint64
	Role Role
}

const principalKey = "principal"

// PrincipalMiddleware reads the identity headers the auth gateway sets on
// every forwarded request.
func PrincipalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader("X-Principal-Id"), 10, 64)
		role := Role(c.GetHeader("X-Principal-Role"))
		if err != nil || id == 0 || (role != RoleCustomer && role != RoleVendor && role != RoleRider) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Not authenticated", "code": "UNAUTHENTICATED",
			})
			return
		}
		c.Set(principalKey, Principal{ID: id, Role: role})
		c.Next()
	}
}

func RequireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principalFrom(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "message": "Forbidden", "code": "FORBIDDEN",
			})
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(Principal)
	return principal
}
