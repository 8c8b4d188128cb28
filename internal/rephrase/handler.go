package rephrase

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// Handler exposes the rephrase endpoint.
type Handler struct {
	svc     *Service
	limiter *middleware.RateLimiter
}

// NewHandler constructs a Handler; a nil limiter disables throttling.
func NewHandler(svc *Service, limiter *middleware.RateLimiter) *Handler {
	return &Handler{svc: svc, limiter: limiter}
}

// RegisterRoutes attaches the rephrase route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/rephrase", middleware.RateLimit(h.limiter), h.rephrase)
}

type rephraseRequest struct {
	Text    string `json:"text"`
	Section string `json:"section"`
}

func (h *Handler) rephrase(c *gin.Context) {
	var req rephraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "Text is required.", nil)
		return
	}

	suggestion, err := h.svc.Rephrase(c.Request.Context(), middleware.UserIDFromContext(c), req.Text, req.Section)
	switch {
	case err == nil:
		respond.OK(c, gin.H{"suggestion": suggestion})
	case errors.Is(err, ErrEmptyText):
		respond.Error(c, http.StatusBadRequest, "invalid_input", "Text is required.", nil)
	case errors.Is(err, ErrTooLong):
		respond.Error(c, http.StatusBadRequest, "invalid_input", "Text is too long.", gin.H{"maxChars": h.svc.maxChars()})
	case errors.Is(err, llm.ErrProvider):
		respond.Error(c, http.StatusBadGateway, "provider_error", "AI service is unavailable. Please try again later.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to rephrase text", nil)
	}
}
