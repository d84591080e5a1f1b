package warehouse

import (
	"backroom/internal/core/tx"
	"backroom/internal/domain/resource"
)

// Service manages the warehouse lifecycle.
type Service = resource.Service[*Warehouse]

// ServiceConfig wires the warehouse service dependencies.
type ServiceConfig struct {
	Repo      resource.Repository[*Warehouse]
	Ownership resource.OwnershipService
	Blobs     resource.BlobGateway
	TxManager tx.Manager
	Bucket    string
}

// NewService creates the warehouse lifecycle service.
func NewService(cfg ServiceConfig) *Service {
	return resource.NewService(resource.ServiceConfig[*Warehouse]{
		Repo:       cfg.Repo,
		Ownership:  cfg.Ownership,
		Blobs:      cfg.Blobs,
		TxManager:  cfg.TxManager,
		Bucket:     cfg.Bucket,
		EntityName: "warehouse",
	})
}
