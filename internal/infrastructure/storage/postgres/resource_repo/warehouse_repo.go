package resource_repo

import (
	"backroom/internal/domain/resource"
	"backroom/internal/domain/warehouse"
	"backroom/internal/infrastructure/storage/postgres"
)

// Compile-time check that WarehouseRepo implements the repository contract.
var _ resource.Repository[*warehouse.Warehouse] = (*WarehouseRepo)(nil)

// WarehouseRepo persists warehouses.
type WarehouseRepo struct {
	*BaseResourceRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates the warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"warehouses",
			"user_warehouses",
			"warehouse_id",
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
		),
	}
}
