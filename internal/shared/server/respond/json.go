package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// JSON encodes payload and writes it with status. An encoding failure turns
// into the 500 envelope rather than a truncated body.
func JSON(c *gin.Context, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		Error(c, http.StatusInternalServerError, "internal_error", "Failed to encode response", nil)
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

// OK writes a 200 response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Items writes a list that is never null on the wire. A non-empty key wraps
// it as {"<key>": [...]}.
func Items[T any](c *gin.Context, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	if key == "" {
		OK(c, items)
		return
	}
	OK(c, map[string]any{key: items})
}
