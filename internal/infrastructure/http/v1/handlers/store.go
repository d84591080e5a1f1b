package handlers

import (
	"github.com/gin-gonic/gin"

	"backroom/internal/core/apperror"
	"backroom/internal/domain/store"
	"backroom/internal/infrastructure/http/v1/dto"
)

// NewStoreHandler wires the store service into the generic resource handler.
func NewStoreHandler(svc *store.Service) *ResourceHandler[*store.Store, dto.StoreResponse] {
	return NewResourceHandler(
		svc,
		dto.FromStore,
		func(c *gin.Context) (*store.Store, []byte, error) {
			var req dto.CreateStoreRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, nil, apperror.NewValidation("invalid request body").WithDetail("error", err.Error())
			}
			return req.ToEntity()
		},
		func(c *gin.Context) (func(*store.Store), []byte, error) {
			var req dto.UpdateStoreRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, nil, apperror.NewValidation("invalid request body").WithDetail("error", err.Error())
			}
			image, err := dto.DecodeImage(req.Image)
			if err != nil {
				return nil, nil, err
			}
			return req.Apply, image, nil
		},
	)
}
