package preferences

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campfire/internal/shared/server/respond"
	"campfire/internal/shared/util"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/save_preferences", h.save)
	rg.GET("/get_user_preferences", h.list)
}

type saveRequest struct {
	UserName    string `json:"user_name" binding:"notblank"`
	Preferences []struct {
		RestaurantID util.FlexInt `json:"restaurant_id" binding:"required"`
		Preference   string       `json:"preference" binding:"oneof=like neutral dislike"`
	} `json:"preferences" binding:"required,min=1,dive"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set("userName", util.SanitizeName(req.UserName))

	entries := make([]Entry, 0, len(req.Preferences))
	for _, p := range req.Preferences {
		entries = append(entries, Entry{RestaurantID: int64(p.RestaurantID), Preference: Preference(p.Preference)})
	}

	if err := h.Svc.Save(c.Request.Context(), req.UserName, entries); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", inputMessage(err), nil)
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
		case errors.Is(err, ErrRestaurantNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Restaurant not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to save preferences", nil)
		}
		return
	}
	respond.OK(c, gin.H{"success": true})
}

// inputMessage strips the sentinel prefix so clients see only the reason.
func inputMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}

func (h *Handler) list(c *gin.Context) {
	name := util.SanitizeName(c.Query("name"))
	if name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Name is required", nil)
		return
	}
	c.Set("userName", name)

	rows, err := h.Svc.List(c.Request.Context(), name)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load preferences", nil)
		return
	}
	respond.Items(c, "restaurants", rows)
}
