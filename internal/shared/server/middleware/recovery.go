package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"campfire/internal/shared/metrics"
	"campfire/internal/shared/server/respond"
	"campfire/internal/shared/telemetry"
)

// Recovery turns a handler panic into the 500 envelope. Nothing is written
// when the client already hung up or the handler had started its response.
// http.ErrAbortHandler is re-raised so net/http drops the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			metrics.HandlerPanicsTotal.WithLabelValues(route).Inc()

			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"route":      route,
				"method":     c.Request.Method,
				"panic":      fmt.Sprint(rec),
			}
			if name := UserNameFromContext(c); name != "" {
				fields["user_name"] = name
			}
			if clientGone(rec) {
				telemetry.Warn("http.panic.client_gone", fields)
				c.Abort()
				return
			}
			fields["stack"] = string(debug.Stack())
			telemetry.Error("http.panic", fields)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.", nil)
		}()
		c.Next()
	}
}

func clientGone(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
