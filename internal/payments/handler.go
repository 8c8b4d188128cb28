package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/validation"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the user-facing payment route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/manual-payment-confirm", h.record)
}

// RegisterAdminRoutes attaches the staff review routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/payments", middleware.RequireStaff())
	admin.GET("", h.list)
	admin.POST("/:id/confirm", h.confirm)
	admin.POST("/:id/revoke", h.revoke)
}

func (h *Handler) record(c *gin.Context) {
	var in RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "transaction_id and amount are required", nil)
		return
	}
	p, balance, err := h.Svc.Record(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrInvalid):
			respond.Error(c, http.StatusBadRequest, "invalid_input", "transaction_id and amount are required", validation.Details(err))
		case errors.Is(err, ErrDuplicateTransaction):
			respond.Error(c, http.StatusBadRequest, "duplicate_transaction", "Transaction ID already used.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record payment", nil)
		}
		return
	}
	c.Set(middleware.PaymentIDKey, p.ID)
	respond.OK(c, gin.H{
		"message": "Payment recorded. Credits added pending review.",
		"payment": p,
		"credits": balance,
	})
}

func (h *Handler) list(c *gin.Context) {
	status := Status(c.Query("status"))
	if status != "" && !ValidStatus(status) {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "unknown status", nil)
		return
	}
	items, err := h.Svc.List(c.Request.Context(), status)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list payments", nil)
		return
	}
	if items == nil {
		items = []Payment{}
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) confirm(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PaymentIDKey, id)
	p, err := h.Svc.Confirm(c.Request.Context(), id)
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	respond.OK(c, p)
}

func (h *Handler) revoke(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.PaymentIDKey, id)
	p, err := h.Svc.Revoke(c.Request.Context(), id)
	if err != nil {
		writeTransitionError(c, err)
		return
	}
	respond.OK(c, p)
}

func writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "payment not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", "payment cannot move to that status", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update payment", nil)
	}
}
