package feedback

import (
	"errors"
	"fmt"
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
	rg.GET("/get_feedback", h.list)
	rg.POST("/submit_feedback", h.submit)
	rg.POST("/vote_feedback", h.vote)
}

func (h *Handler) list(c *gin.Context) {
	name := util.SanitizeName(c.Query("user_name"))
	if name != "" {
		c.Set("userName", name)
	}
	rows, err := h.Svc.List(c.Request.Context(), name)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load feedback", nil)
		return
	}
	respond.Items(c, "suggestions", rows)
}

type submitRequest struct {
	UserName string `json:"user_name" binding:"notblank"`
	Content  string `json:"content" binding:"notblank,max=500"`
}

func (submitRequest) FieldMessages() map[string]string {
	return map[string]string{
		"user_name.notblank": "Name is required",
		"content.notblank":   "Suggestion cannot be empty",
		"content.max":        fmt.Sprintf("Suggestion must be %d characters or fewer", MaxContentLength),
	}
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set("userName", util.SanitizeName(req.UserName))

	s, err := h.Svc.Submit(c.Request.Context(), req.UserName, req.Content)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", inputMessage(err), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to submit feedback", nil)
		return
	}
	respond.OK(c, gin.H{"success": true, "id": s.ID})
}

type voteRequest struct {
	UserName     string       `json:"user_name"`
	SuggestionID util.FlexInt `json:"suggestion_id" binding:"required"`
	VoteType     int          `json:"vote_type" binding:"oneof=1 -1"`
}

func (h *Handler) vote(c *gin.Context) {
	var req voteRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set("userName", util.SanitizeName(req.UserName))

	score, err := h.Svc.Vote(c.Request.Context(), req.UserName, int64(req.SuggestionID), req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", inputMessage(err), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Suggestion not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to record vote", nil)
		}
		return
	}
	respond.OK(c, gin.H{"success": true, "new_score": score})
}

// inputMessage strips the sentinel prefix so clients see only the reason.
func inputMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
}
