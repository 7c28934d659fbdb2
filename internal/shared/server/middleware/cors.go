package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"campfire/internal/shared/server/respond"
)

// CORSPolicy lists the browser origins allowed to call the JSON API.
// An origin of "*" admits any page, without credentials.
type CORSPolicy struct {
	Origins       []string
	AllowHeaders  []string
	ExposeHeaders []string
	MaxAge        time.Duration
}

// DefaultCORSPolicy allows the configured origins to send the identity and
// request id headers and to read back the request id and Retry-After.
func DefaultCORSPolicy(origins []string) CORSPolicy {
	return CORSPolicy{
		Origins:       origins,
		AllowHeaders:  []string{"Content-Type", UserHeader, RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "Retry-After"},
		MaxAge:        10 * time.Minute,
	}
}

// CORS answers preflights and decorates responses for allowed origins.
// A preflight from any other origin is refused with 403.
func CORS(p CORSPolicy) gin.HandlerFunc {
	allowed := make(map[string]bool, len(p.Origins))
	wildcard := false
	for _, o := range p.Origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			wildcard = true
		default:
			allowed[o] = true
		}
	}
	allowHeaders := strings.Join(p.AllowHeaders, ", ")
	exposeHeaders := strings.Join(p.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(p.MaxAge / time.Second))

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		preflight := c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != ""
		if origin == "" {
			if preflight {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		switch {
		case allowed[origin]:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		case wildcard:
			h.Set("Access-Control-Allow-Origin", "*")
		default:
			if preflight {
				respond.Error(c, http.StatusForbidden, "origin_not_allowed", "Origin not allowed", nil)
				return
			}
			c.Next()
			return
		}
		if exposeHeaders != "" {
			h.Set("Access-Control-Expose-Headers", exposeHeaders)
		}

		if !preflight {
			c.Next()
			return
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if allowHeaders != "" {
			h.Set("Access-Control-Allow-Headers", allowHeaders)
		}
		if p.MaxAge > 0 {
			h.Set("Access-Control-Max-Age", maxAge)
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
