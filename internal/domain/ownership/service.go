package ownership

import (
	"context"
	"fmt"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
)

// Service provides ownership operations for one resource kind.
type Service struct {
	repo Repository

	// entityName for error messages ("store ownership", "warehouse ownership")
	entityName string
}

// NewService creates an ownership service over the given join table repo.
func NewService(repo Repository, entityName string) *Service {
	return &Service{repo: repo, entityName: entityName}
}

// GetByUserAndResource returns the join row for the pair or NOT_FOUND.
func (s *Service) GetByUserAndResource(ctx context.Context, userID string, resourceID id.ID) (*Ownership, error) {
	own, err := s.repo.FindByUserAndResource(ctx, userID, resourceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound(s.entityName, resourceID.String())
		}
		return nil, err
	}
	return own, nil
}

// Create inserts a join row for the pair.
func (s *Service) Create(ctx context.Context, userID string, resourceID id.ID) (*Ownership, error) {
	if userID == "" {
		return nil, apperror.NewValidation("user id must not be empty")
	}
	if id.IsNil(resourceID) {
		return nil, apperror.NewValidation("resource id must not be empty")
	}

	own := New(userID, resourceID)
	if err := s.repo.Insert(ctx, own); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.entityName, err)
	}
	return own, nil
}

// Delete removes the join row identified by the exact triple.
// A partial match (right resource, wrong ownership id, or vice versa)
// is treated as NOT_FOUND.
func (s *Service) Delete(ctx context.Context, userID string, resourceID, ownershipID id.ID) error {
	deleted, err := s.repo.DeleteByTriple(ctx, userID, resourceID, ownershipID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.entityName, err)
	}
	if deleted == 0 {
		return apperror.NewNotFound(s.entityName, ownershipID.String())
	}
	return nil
}
