package handlers

import (
	"github.com/gin-gonic/gin"

	"backroom/internal/domain/resource"
	"backroom/internal/infrastructure/http/v1/dto"
)

// ResourceHandler serves the five lifecycle routes for one resource kind.
// The DTO mapping differs per kind, so it is injected as functions; the
// flow (auth, binding, service call, response shape) is shared.
type ResourceHandler[T resource.Entity, R any] struct {
	*BaseHandler

	svc        *resource.Service[T]
	toResponse func(T) R

	// decodeCreate parses the request into a new entity plus image bytes.
	decodeCreate func(c *gin.Context) (T, []byte, error)

	// decodeUpdate parses the request into a mutation plus image bytes.
	decodeUpdate func(c *gin.Context) (func(T), []byte, error)
}

// NewResourceHandler creates a handler for one resource kind.
func NewResourceHandler[T resource.Entity, R any](
	svc *resource.Service[T],
	toResponse func(T) R,
	decodeCreate func(c *gin.Context) (T, []byte, error),
	decodeUpdate func(c *gin.Context) (func(T), []byte, error),
) *ResourceHandler[T, R] {
	return &ResourceHandler[T, R]{
		BaseHandler:  NewBaseHandler(),
		svc:          svc,
		toResponse:   toResponse,
		decodeCreate: decodeCreate,
		decodeUpdate: decodeUpdate,
	}
}

// List handles GET /.
func (h *ResourceHandler[T, R]) List(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.svc.GetAll(c.Request.Context(), userID, query.ToParams())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, h.toResponse))
}

// Get handles GET /:id.
func (h *ResourceHandler[T, R]) Get(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resourceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), userID, resourceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.toResponse(res))
}

// Create handles POST /.
func (h *ResourceHandler[T, R]) Create(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	res, image, err := h.decodeCreate(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), userID, res, image)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, h.toResponse(created))
}

// Update handles PUT /:id.
func (h *ResourceHandler[T, R]) Update(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resourceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	apply, image, err := h.decodeUpdate(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), userID, resourceID, apply, image)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, h.toResponse(updated))
}

// Delete handles DELETE /:id.
func (h *ResourceHandler[T, R]) Delete(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resourceID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	result, err := h.svc.Delete(c.Request.Context(), userID, resourceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.DeleteResponse{
		ID:    result.ID.String(),
		Image: result.Image,
	})
}

// RegisterRoutes mounts the five lifecycle routes on a group.
func (h *ResourceHandler[T, R]) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
