package places

import (
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"campfire/internal/shared/server/respond"
	"campfire/internal/shared/telemetry"
)

// MinQueryLength is the shortest query forwarded to the provider.
const MinQueryLength = 2

type Handler struct {
	Provider Provider
}

func NewHandler(p Provider) *Handler {
	return &Handler{Provider: p}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/autocomplete", h.autocomplete)
}

// autocomplete never fails from the browser's point of view: short queries
// and provider errors both yield an empty list.
func (h *Handler) autocomplete(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	city := strings.TrimSpace(c.Query("city"))
	if utf8.RuneCountInString(query) < MinQueryLength {
		respond.Items[Suggestion](c, "", nil)
		return
	}
	out, err := h.Provider.Autocomplete(c.Request.Context(), query, city, c.Query("session_token"))
	if err != nil {
		telemetry.Warn("places.autocomplete.failed", map[string]any{
			"provider": h.Provider.Name(),
			"city":     city,
			"error":    err.Error(),
		})
		respond.Items[Suggestion](c, "", nil)
		return
	}
	respond.Items(c, "", out)
}
