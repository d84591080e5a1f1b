package resource

import (
	"context"
	"fmt"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/core/slug"
	"backroom/internal/core/tx"
	"backroom/pkg/logger"
)

// Service orchestrates the resource lifecycle saga across the relational
// store, the ownership join and the blob store.
//
// Blob writes happen outside the transaction (the blob store cannot join
// it), so Create uploads first and compensates with a delete when the
// transaction fails, and Delete removes the blob only after the rows are
// gone. A crash between the two steps leaves an orphaned blob, never a
// row pointing at a missing one.
type Service[T Entity] struct {
	repo      Repository[T]
	ownership OwnershipService
	blobs     BlobGateway
	txManager tx.Manager

	// bucket holds this resource kind's images
	bucket string

	// entityName for error messages
	entityName string
}

// ServiceConfig configures a resource service.
type ServiceConfig[T Entity] struct {
	Repo       Repository[T]
	Ownership  OwnershipService
	Blobs      BlobGateway
	TxManager  tx.Manager
	Bucket     string
	EntityName string
}

// NewService creates a resource service.
func NewService[T Entity](cfg ServiceConfig[T]) *Service[T] {
	return &Service[T]{
		repo:       cfg.Repo,
		ownership:  cfg.Ownership,
		blobs:      cfg.Blobs,
		txManager:  cfg.TxManager,
		bucket:     cfg.Bucket,
		entityName: cfg.EntityName,
	}
}

// ObjectName returns the blob object name for a resource.
// Derived from the id so uploads for the same resource overwrite each other.
func ObjectName(resourceID id.ID) string {
	return resourceID.String() + ".jpeg"
}

func (s *Service[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *Service[T]) normalizeGetErr(err error, resourceID any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, resourceID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", resourceID)
}

// GetAll retrieves a page of the owner's resources with pagination metadata.
func (s *Service[T]) GetAll(ctx context.Context, ownerID string, params QueryParams) (QueryResult[T], error) {
	params = params.Normalize()

	var result QueryResult[T]

	total, err := s.repo.CountByOwner(ctx, ownerID, params.Search)
	if err != nil {
		return result, fmt.Errorf("count %s: %w", s.entityName, err)
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return result, fmt.Errorf("list %s: %w", s.entityName, err)
	}

	lastPage := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	result.Data = items
	result.Meta = Meta{
		Total:    total,
		Limit:    params.Limit,
		Page:     params.Page,
		LastPage: lastPage,
	}
	return result, nil
}

// GetByID retrieves a resource the owner owns.
func (s *Service[T]) GetByID(ctx context.Context, ownerID string, resourceID id.ID) (T, error) {
	res, err := s.repo.FindByOwner(ctx, ownerID, resourceID)
	if err != nil {
		return res, s.normalizeGetErr(err, resourceID.String())
	}
	return res, nil
}

// Create runs the creation saga:
//  1. per-owner name uniqueness pre-check
//  2. slug derivation from name + id tail
//  3. optional image upload (abort before any row is written)
//  4. resource insert + ownership insert in one transaction
//
// When the transaction fails after an upload, the blob is deleted again
// so no unreferenced object survives a failed create.
func (s *Service[T]) Create(ctx context.Context, ownerID string, res T, image []byte) (T, error) {
	var zero T

	if err := res.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	taken, err := s.nameTaken(ctx, ownerID, res.GetName(), id.Nil)
	if err != nil {
		return zero, err
	}
	if taken {
		return zero, apperror.NewDuplicate(s.entityName, "name", res.GetName())
	}

	resourceSlug, err := slug.Generate(res.GetName(), slug.Options{
		WithID: true,
		UUID:   res.GetID().String(),
	})
	if err != nil {
		return zero, err
	}
	res.SetSlug(resourceSlug)

	uploaded := false
	if len(image) > 0 {
		url, err := s.blobs.Upload(ctx, s.bucket, ObjectName(res.GetID()), image)
		if err != nil {
			return zero, err
		}
		res.SetImage(url)
		uploaded = true
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, res); err != nil {
			return fmt.Errorf("insert %s: %w", s.entityName, err)
		}
		if _, err := s.ownership.Create(ctx, ownerID, res.GetID()); err != nil {
			return fmt.Errorf("link %s owner: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		if uploaded {
			s.compensateUpload(ctx, res.GetImage())
		}
		return zero, err
	}

	return res, nil
}

// compensateUpload removes a blob written for a create whose transaction
// failed. Failure here leaves an orphaned object, which is preferable to
// masking the original error.
func (s *Service[T]) compensateUpload(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}
	if err := s.blobs.Delete(ctx, s.bucket, imageURL); err != nil {
		logger.Warn(ctx, "compensating image delete failed",
			"entity", s.entityName,
			"image", imageURL,
			"error", err,
		)
	}
}

// Update modifies a resource the owner owns. apply mutates the loaded
// entity in place (partial updates decide field by field).
//
// The slug is regenerated only when the name changes; a changed name is
// re-checked for per-owner uniqueness excluding the resource itself.
// A new image overwrites the old object under the same name before the
// row update. If the row update then fails, the old bytes are gone; the
// URL stays consistent because the object name never changes.
func (s *Service[T]) Update(ctx context.Context, ownerID string, resourceID id.ID, apply func(T), image []byte) (T, error) {
	var zero T

	res, err := s.repo.FindByOwner(ctx, ownerID, resourceID)
	if err != nil {
		return zero, s.normalizeGetErr(err, resourceID.String())
	}

	oldName := res.GetName()
	apply(res)

	if err := res.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	if res.GetName() != oldName {
		taken, err := s.nameTaken(ctx, ownerID, res.GetName(), resourceID)
		if err != nil {
			return zero, err
		}
		if taken {
			return zero, apperror.NewDuplicate(s.entityName, "name", res.GetName())
		}

		resourceSlug, err := slug.Generate(res.GetName(), slug.Options{
			WithID: true,
			UUID:   resourceID.String(),
		})
		if err != nil {
			return zero, err
		}
		res.SetSlug(resourceSlug)
	}

	if len(image) > 0 {
		url, err := s.blobs.Upload(ctx, s.bucket, ObjectName(resourceID), image)
		if err != nil {
			return zero, err
		}
		res.SetImage(url)
	}

	res.Touch()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, res); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	return res, nil
}

// Delete removes the ownership row, then the resource row, in one
// transaction, and finally the image blob. A failed blob delete is
// logged and swallowed: the rows are gone and the operation succeeded
// from the caller's point of view.
func (s *Service[T]) Delete(ctx context.Context, ownerID string, resourceID id.ID) (DeleteResult, error) {
	var result DeleteResult

	own, err := s.ownership.GetByUserAndResource(ctx, ownerID, resourceID)
	if err != nil {
		return result, s.normalizeGetErr(err, resourceID.String())
	}

	res, err := s.repo.FindByOwner(ctx, ownerID, resourceID)
	if err != nil {
		return result, s.normalizeGetErr(err, resourceID.String())
	}
	imageURL := res.GetImage()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Ownership first: the join row references the resource row.
		if err := s.ownership.Delete(ctx, ownerID, resourceID, own.ID); err != nil {
			return fmt.Errorf("unlink %s owner: %w", s.entityName, err)
		}
		if err := s.repo.Delete(ctx, resourceID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if imageURL != "" {
		if err := s.blobs.Delete(ctx, s.bucket, imageURL); err != nil {
			logger.Warn(ctx, "image delete failed after row removal",
				"entity", s.entityName,
				"id", resourceID.String(),
				"image", imageURL,
				"error", err,
			)
		}
	}

	result.ID = resourceID
	result.Image = imageURL
	return result, nil
}

// nameTaken reports whether the owner already has a resource with this
// name. Comparison is case-insensitive on trimmed names; this pre-check
// races with concurrent creates, the unique constraint translation in
// the repository is the backstop.
func (s *Service[T]) nameTaken(ctx context.Context, ownerID, name string, excludeID id.ID) (bool, error) {
	count, err := s.repo.CountByOwnerAndName(ctx, ownerID, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("check %s name: %w", s.entityName, err)
	}
	return count > 0, nil
}
