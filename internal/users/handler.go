package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.signup)
	rg.POST("/token", h.token)
	rg.POST("/token/refresh", h.refresh)
	rg.GET("/me", h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var in SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "All fields are required.", nil)
		return
	}
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "All fields are required.", nil)
		return
	}
	user, err := h.Svc.Signup(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrInvalid):
			respond.Error(c, http.StatusBadRequest, "invalid_input", "Invalid signup details.", validation.Details(err))
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "email_taken", "Email is already registered.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		}
		return
	}
	respond.Created(c, gin.H{
		"message": "User created successfully.",
		"id":      user.ID,
	})
}

func (h *Handler) token(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_credentials", "Invalid email or password.", nil)
		return
	}
	session, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusBadRequest, "invalid_credentials", "Invalid email or password.", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		return
	}
	respond.OK(c, gin.H{
		"access":  session.Access,
		"refresh": session.Refresh,
		"credits": session.Credits,
	})
}

func (h *Handler) refresh(c *gin.Context) {
	var in RefreshInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Refresh == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "refresh is required", nil)
		return
	}
	access, err := h.Svc.Refresh(c.Request.Context(), in.Refresh)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			respond.Error(c, http.StatusUnauthorized, "token_not_valid", "Token is invalid or expired", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to refresh token", nil)
		return
	}
	respond.OK(c, gin.H{"access": access})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	credits, err := h.Svc.Balance(c.Request.Context(), user.ID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load credits", nil)
		return
	}
	respond.OK(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"credits":  credits,
		"isStaff":  user.IsStaff,
	})
}
