package middleware

import (
	"github.com/gin-gonic/gin"

	"campfire/internal/shared/util"
	"campfire/internal/webclient"
)

const (
	userNameKey = "userName"

	// UserHeader carries the self-declared display name on API calls.
	UserHeader = "X-Campfire-User"
)

// Identity records the caller's self-declared user name, if any. The header
// wins over the cookie the browser UI keeps under webclient.NameKey.
// Campfire has no authentication; the name only feeds logs and rate-limit keys.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := util.SanitizeName(c.GetHeader(UserHeader))
		if name == "" {
			if cookie, err := c.Cookie(webclient.NameKey); err == nil {
				name = util.SanitizeName(cookie)
			}
		}
		if name != "" {
			c.Set(userNameKey, name)
		}
		c.Next()
	}
}

// UserNameFromContext fetches the user name set by Identity.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
