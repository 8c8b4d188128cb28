package credits

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/validation"
)

// Handler wires HTTP routes to the credit ledger.
type Handler struct {
	svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches credit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credits", h.get)
	rg.POST("/deduct-credits", h.deduct)
}

type deductRequest struct {
	Amount int `json:"amount" validate:"gt=0"`
}

func (h *Handler) get(c *gin.Context) {
	balance, err := h.svc.Balance(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load credits", nil)
		return
	}
	respond.OK(c, gin.H{"credits": balance})
}

func (h *Handler) deduct(c *gin.Context) {
	var req deductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "amount is required", nil)
		return
	}
	if err := validation.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "amount must be positive", validation.Details(err))
		return
	}
	balance, err := h.svc.Deduct(c.Request.Context(), middleware.UserIDFromContext(c), req.Amount)
	if err != nil {
		if errors.Is(err, ErrInsufficientCredits) {
			respond.Error(c, http.StatusPaymentRequired, "insufficient_credits", "Not enough credits", gin.H{"credits": balance})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to deduct credits", nil)
		return
	}
	respond.OK(c, gin.H{"credits": balance})
}
