package resource_repo

import (
	"backroom/internal/domain/resource"
	"backroom/internal/domain/store"
	"backroom/internal/infrastructure/storage/postgres"
)

// Compile-time check that StoreRepo implements the repository contract.
var _ resource.Repository[*store.Store] = (*StoreRepo)(nil)

// StoreRepo persists stores.
type StoreRepo struct {
	*BaseResourceRepo[*store.Store]
}

// NewStoreRepo creates the store repository.
func NewStoreRepo(txm *postgres.TxManager) *StoreRepo {
	return &StoreRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"stores",
			"user_stores",
			"store_id",
			postgres.ExtractDBColumns[store.Store](),
			func() *store.Store { return &store.Store{} },
		),
	}
}
