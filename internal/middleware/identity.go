package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskheroes/task-heroes-api/internal/constants"
	apierrors "github.com/taskheroes/task-heroes-api/internal/errors"
)

// Identity is the caller context the mobile client sends with every
// request as query parameters. There is no server-side session: the
// client passes its identity explicitly on each call.
type Identity struct {
	UserID  uint64
	IsAdmin bool
}

// CallerIdentity parses the userId and isAdmin query parameters into the
// request context. Both are optional; absent values default to zero.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity Identity

		if raw := c.Query("userId"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				identity.UserID = id
			}
		}
		if raw := c.Query("isAdmin"); raw != "" {
			if isAdmin, err := strconv.ParseBool(raw); err == nil {
				identity.IsAdmin = isAdmin
			}
		}

		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

// RequireAdmin rejects requests whose caller identity is not the admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.IsAdmin {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the caller identity from the request context.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return Identity{}, false
	}

	identity, ok := value.(Identity)
	if !ok {
		return Identity{}, false
	}
	return identity, true
}
