package handlers

import (
	"github.com/gin-gonic/gin"

	"backroom/internal/core/apperror"
	"backroom/internal/domain/warehouse"
	"backroom/internal/infrastructure/http/v1/dto"
)

// NewWarehouseHandler wires the warehouse service into the generic resource handler.
func NewWarehouseHandler(svc *warehouse.Service) *ResourceHandler[*warehouse.Warehouse, dto.WarehouseResponse] {
	return NewResourceHandler(
		svc,
		dto.FromWarehouse,
		func(c *gin.Context) (*warehouse.Warehouse, []byte, error) {
			var req dto.CreateWarehouseRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				return nil, nil, apperror.NewValidation("invalid request body").WithDetail("error", err.Error())
			}
			return req.ToEntity()
		},
		func(c *gin.Context) (func(*warehouse.Warehouse), []byte, error) {
			var req dto.UpdateWarehouseRequest
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
