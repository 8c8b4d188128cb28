package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/validation"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.replace)
	rg.PATCH("/resumes/:id", h.patch)
	rg.DELETE("/resumes/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	limit := parseNonNegative(c.Query("limit"))
	offset := parseNonNegative(c.Query("offset"))
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	out := listResponse{Items: make([]resumeResponse, 0, len(items))}
	for _, r := range items {
		out.Items = append(out.Items, toResponse(r))
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, res.ID)
	respond.Created(c, toResponse(res))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) replace(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	in, ok := bindInput(c)
	if !ok {
		return
	}
	res, err := h.Svc.Replace(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) patch(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	in, ok := bindInput(c)
	if !ok {
		return
	}
	res, err := h.Svc.Patch(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	respond.NoContent(c)
}

func bindInput(c *gin.Context) (Input, bool) {
	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return Input{}, false
	}
	if err := validation.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", validation.Details(err))
		return Input{}, false
	}
	return Input{
		Title:          req.Title,
		Template:       req.Template,
		Data:           req.Data,
		HiddenSections: req.HiddenSections,
	}, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
	}
}

func parseNonNegative(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
