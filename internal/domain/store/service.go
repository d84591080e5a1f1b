package store

import (
	"backroom/internal/core/tx"
	"backroom/internal/domain/resource"
)

// Service manages the store lifecycle.
type Service = resource.Service[*Store]

// ServiceConfig wires the store service dependencies.
type ServiceConfig struct {
	Repo      resource.Repository[*Store]
	Ownership resource.OwnershipService
	Blobs     resource.BlobGateway
	TxManager tx.Manager
	Bucket    string
}

// NewService creates the store lifecycle service.
func NewService(cfg ServiceConfig) *Service {
	return resource.NewService(resource.ServiceConfig[*Store]{
		Repo:       cfg.Repo,
		Ownership:  cfg.Ownership,
		Blobs:      cfg.Blobs,
		TxManager:  cfg.TxManager,
		Bucket:     cfg.Bucket,
		EntityName: "store",
	})
}
