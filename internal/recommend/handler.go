package recommend

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
	rg.POST("/get_recommendations", h.recommend)
}

func (h *Handler) recommend(c *gin.Context) {
	var req Request
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set("userName", util.SanitizeName(req.User))
	c.Set("city", strings.TrimSpace(req.City))

	recs, err := h.Svc.Recommend(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "), nil)
			return
		}
		_ = c.Error(err)
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate recommendations", nil)
		return
	}
	respond.Items(c, "recommendations", recs)
}
