package resource

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/domain/ownership"
)

// --- test entity ---

type testResource struct {
	Base
}

func (r *testResource) Validate(ctx context.Context) error {
	if strings.TrimSpace(r.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	return nil
}

// --- fakes ---

type fakeRepo struct {
	insertFn             func(ctx context.Context, res *testResource) error
	updateFn             func(ctx context.Context, res *testResource) error
	deleteFn             func(ctx context.Context, resourceID id.ID) error
	findByOwnerFn        func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error)
	listByOwnerFn        func(ctx context.Context, ownerID string, params QueryParams) ([]*testResource, error)
	countByOwnerFn       func(ctx context.Context, ownerID, search string) (int64, error)
	countByOwnerNameFn   func(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error)
}

func (f *fakeRepo) Insert(ctx context.Context, res *testResource) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, res)
	}
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, res *testResource) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, res)
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, resourceID id.ID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, resourceID)
	}
	return nil
}

func (f *fakeRepo) FindByOwner(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
	if f.findByOwnerFn != nil {
		return f.findByOwnerFn(ctx, ownerID, resourceID)
	}
	return nil, apperror.NewNotFound("resource", resourceID.String())
}

func (f *fakeRepo) ListByOwner(ctx context.Context, ownerID string, params QueryParams) ([]*testResource, error) {
	if f.listByOwnerFn != nil {
		return f.listByOwnerFn(ctx, ownerID, params)
	}
	return nil, nil
}

func (f *fakeRepo) CountByOwner(ctx context.Context, ownerID, search string) (int64, error) {
	if f.countByOwnerFn != nil {
		return f.countByOwnerFn(ctx, ownerID, search)
	}
	return 0, nil
}

func (f *fakeRepo) CountByOwnerAndName(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error) {
	if f.countByOwnerNameFn != nil {
		return f.countByOwnerNameFn(ctx, ownerID, name, excludeID)
	}
	return 0, nil
}

type fakeOwnership struct {
	getFn    func(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error)
	createFn func(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error)
	deleteFn func(ctx context.Context, userID string, resourceID, ownershipID id.ID) error
}

func (f *fakeOwnership) GetByUserAndResource(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error) {
	if f.getFn != nil {
		return f.getFn(ctx, userID, resourceID)
	}
	return ownership.New(userID, resourceID), nil
}

func (f *fakeOwnership) Create(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error) {
	if f.createFn != nil {
		return f.createFn(ctx, userID, resourceID)
	}
	return ownership.New(userID, resourceID), nil
}

func (f *fakeOwnership) Delete(ctx context.Context, userID string, resourceID, ownershipID id.ID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, userID, resourceID, ownershipID)
	}
	return nil
}

type fakeBlobs struct {
	uploadFn func(ctx context.Context, bucket, objectName string, data []byte) (string, error)
	deleteFn func(ctx context.Context, bucket, imageURL string) error
	urlFn    func(bucket, objectName string) string
}

func (f *fakeBlobs) Upload(ctx context.Context, bucket, objectName string, data []byte) (string, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, bucket, objectName, data)
	}
	return "https://blobs.test/" + bucket + "/" + objectName, nil
}

func (f *fakeBlobs) URL(bucket, objectName string) string {
	if f.urlFn != nil {
		return f.urlFn(bucket, objectName)
	}
	return "https://blobs.test/" + bucket + "/" + objectName
}

func (f *fakeBlobs) Delete(ctx context.Context, bucket, imageURL string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, bucket, imageURL)
	}
	return nil
}

// fakeTxManager runs the function directly, no database involved.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func newTestService(repo *fakeRepo, own *fakeOwnership, blobs *fakeBlobs, txm *fakeTxManager) *Service[*testResource] {
	return NewService(ServiceConfig[*testResource]{
		Repo:       repo,
		Ownership:  own,
		Blobs:      blobs,
		TxManager:  txm,
		Bucket:     "test-bucket",
		EntityName: "resource",
	})
}

func newTestResource(name string) *testResource {
	res := &testResource{Base: NewBase(id.New())}
	res.Name = name
	return res
}

// --- Create ---

func TestServiceCreateWithImage(t *testing.T) {
	ctx := context.Background()
	res := newTestResource("main store")

	var inserted *testResource
	var linkedResource id.ID
	repo := &fakeRepo{
		insertFn: func(ctx context.Context, r *testResource) error {
			inserted = r
			return nil
		},
	}
	own := &fakeOwnership{
		createFn: func(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error) {
			linkedResource = resourceID
			return ownership.New(userID, resourceID), nil
		},
	}
	var uploadedObject string
	blobs := &fakeBlobs{
		uploadFn: func(ctx context.Context, bucket, objectName string, data []byte) (string, error) {
			uploadedObject = objectName
			return "https://blobs.test/" + bucket + "/" + objectName, nil
		},
	}
	txm := &fakeTxManager{}

	svc := newTestService(repo, own, blobs, txm)

	created, err := svc.Create(ctx, "user-1", res, []byte("jpeg-bytes"))
	require.NoError(t, err)

	require.NotNil(t, inserted)
	assert.Equal(t, res.ID, linkedResource)
	assert.Equal(t, 1, txm.calls)
	assert.Equal(t, res.ID.String()+".jpeg", uploadedObject)
	assert.NotEmpty(t, created.GetImage())

	// slug carries the id tail for uniqueness
	idStr := res.ID.String()
	tail := idStr[strings.LastIndex(idStr, "-")+1:]
	assert.Equal(t, "main-store-"+tail, created.GetSlug())
}

func TestServiceCreateWithoutImageSkipsBlobStore(t *testing.T) {
	ctx := context.Background()
	blobCalled := false
	blobs := &fakeBlobs{
		uploadFn: func(ctx context.Context, bucket, objectName string, data []byte) (string, error) {
			blobCalled = true
			return "", nil
		},
	}
	svc := newTestService(&fakeRepo{}, &fakeOwnership{}, blobs, &fakeTxManager{})

	created, err := svc.Create(ctx, "user-1", newTestResource("plain store"), nil)
	require.NoError(t, err)
	assert.False(t, blobCalled)
	assert.Empty(t, created.GetImage())
}

func TestServiceCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	uploaded := false
	inserted := false
	repo := &fakeRepo{
		countByOwnerNameFn: func(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error) {
			return 1, nil
		},
		insertFn: func(ctx context.Context, r *testResource) error {
			inserted = true
			return nil
		},
	}
	blobs := &fakeBlobs{
		uploadFn: func(ctx context.Context, bucket, objectName string, data []byte) (string, error) {
			uploaded = true
			return "", nil
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, blobs, &fakeTxManager{})

	_, err := svc.Create(ctx, "user-1", newTestResource("taken name"), []byte("img"))
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.False(t, uploaded, "nothing should be uploaded for a rejected create")
	assert.False(t, inserted)
}

func TestServiceCreateInsertFailureCompensatesUpload(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{
		insertFn: func(ctx context.Context, r *testResource) error {
			return apperror.NewDuplicate("resource", "slug", r.Slug)
		},
	}
	var deletedURL string
	blobs := &fakeBlobs{
		deleteFn: func(ctx context.Context, bucket, imageURL string) error {
			deletedURL = imageURL
			return nil
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, blobs, &fakeTxManager{})

	res := newTestResource("main store")
	_, err := svc.Create(ctx, "user-1", res, []byte("jpeg-bytes"))
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.NotEmpty(t, deletedURL, "uploaded blob must be removed when the transaction fails")
	assert.Contains(t, deletedURL, res.ID.String())
}

func TestServiceCreateOwnershipFailureCompensatesUpload(t *testing.T) {
	ctx := context.Background()
	own := &fakeOwnership{
		createFn: func(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error) {
			return nil, errors.New("link failed")
		},
	}
	deleted := false
	blobs := &fakeBlobs{
		deleteFn: func(ctx context.Context, bucket, imageURL string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(&fakeRepo{}, own, blobs, &fakeTxManager{})

	_, err := svc.Create(ctx, "user-1", newTestResource("main store"), []byte("img"))
	require.Error(t, err)
	assert.True(t, deleted)
}

func TestServiceCreateUploadFailureAbortsEarly(t *testing.T) {
	ctx := context.Background()
	inserted := false
	repo := &fakeRepo{
		insertFn: func(ctx context.Context, r *testResource) error {
			inserted = true
			return nil
		},
	}
	blobs := &fakeBlobs{
		uploadFn: func(ctx context.Context, bucket, objectName string, data []byte) (string, error) {
			return "", apperror.NewUploadFailed(errors.New("connection refused"))
		},
	}
	txm := &fakeTxManager{}
	svc := newTestService(repo, &fakeOwnership{}, blobs, txm)

	_, err := svc.Create(ctx, "user-1", newTestResource("main store"), []byte("img"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUploadFailed, appErr.Code)
	assert.False(t, inserted)
	assert.Equal(t, 0, txm.calls)
}

func TestServiceCreateInvalidName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeRepo{}, &fakeOwnership{}, &fakeBlobs{}, &fakeTxManager{})

	_, err := svc.Create(ctx, "user-1", newTestResource("   "), nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

// --- Update ---

func TestServiceUpdateAddressOnlyKeepsSlug(t *testing.T) {
	ctx := context.Background()
	existing := newTestResource("main store")
	existing.Slug = "main-store-abc123"

	var updated *testResource
	repo := &fakeRepo{
		findByOwnerFn: func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, r *testResource) error {
			updated = r
			return nil
		},
	}
	nameChecked := false
	repo.countByOwnerNameFn = func(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error) {
		nameChecked = true
		return 0, nil
	}
	svc := newTestService(repo, &fakeOwnership{}, &fakeBlobs{}, &fakeTxManager{})

	res, err := svc.Update(ctx, "user-1", existing.ID, func(r *testResource) {
		r.Address = "5 new street"
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "main-store-abc123", res.GetSlug())
	assert.Equal(t, "5 new street", updated.Address)
	assert.False(t, nameChecked, "unchanged name needs no uniqueness check")
}

func TestServiceUpdateRenameRegeneratesSlug(t *testing.T) {
	ctx := context.Background()
	existing := newTestResource("old name")
	existing.Slug = "old-name-abc123"

	var excludedID id.ID
	repo := &fakeRepo{
		findByOwnerFn: func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
			return existing, nil
		},
		countByOwnerNameFn: func(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error) {
			excludedID = excludeID
			return 0, nil
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, &fakeBlobs{}, &fakeTxManager{})

	res, err := svc.Update(ctx, "user-1", existing.ID, func(r *testResource) {
		r.Name = "new name"
	}, nil)
	require.NoError(t, err)

	idStr := existing.ID.String()
	tail := idStr[strings.LastIndex(idStr, "-")+1:]
	assert.Equal(t, "new-name-"+tail, res.GetSlug())
	assert.Equal(t, existing.ID, excludedID, "uniqueness check must exclude the resource itself")
}

func TestServiceUpdateRenameOntoExistingName(t *testing.T) {
	ctx := context.Background()
	existing := newTestResource("old name")
	existing.Slug = "old-name-abc123"

	updateCalled := false
	repo := &fakeRepo{
		findByOwnerFn: func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
			return existing, nil
		},
		countByOwnerNameFn: func(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error) {
			return 1, nil
		},
		updateFn: func(ctx context.Context, r *testResource) error {
			updateCalled = true
			return nil
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, &fakeBlobs{}, &fakeTxManager{})

	_, err := svc.Update(ctx, "user-1", existing.ID, func(r *testResource) {
		r.Name = "taken name"
	}, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.False(t, updateCalled)
}

func TestServiceUpdateNotOwned(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeRepo{}, &fakeOwnership{}, &fakeBlobs{}, &fakeTxManager{})

	_, err := svc.Update(ctx, "intruder", id.New(), func(r *testResource) {}, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceUpdateWithImageOverwritesObject(t *testing.T) {
	ctx := context.Background()
	existing := newTestResource("main store")
	repo := &fakeRepo{
		findByOwnerFn: func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
			return existing, nil
		},
	}
	var uploadedObject string
	blobs := &fakeBlobs{
		uploadFn: func(ctx context.Context, bucket, objectName string, data []byte) (string, error) {
			uploadedObject = objectName
			return "https://blobs.test/" + bucket + "/" + objectName + "?t=42", nil
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, blobs, &fakeTxManager{})

	res, err := svc.Update(ctx, "user-1", existing.ID, func(r *testResource) {}, []byte("new-bytes"))
	require.NoError(t, err)
	assert.Equal(t, existing.ID.String()+".jpeg", uploadedObject, "object name stays id-derived so uploads overwrite")
	assert.Contains(t, res.GetImage(), "?t=")
}

// --- Delete ---

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	existing := newTestResource("main store")
	existing.SetImage("https://blobs.test/test-bucket/" + existing.ID.String() + ".jpeg?t=1")

	ownRow := ownership.New("user-1", existing.ID)

	var order []string
	own := &fakeOwnership{
		getFn: func(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error) {
			return ownRow, nil
		},
		deleteFn: func(ctx context.Context, userID string, resourceID, ownershipID id.ID) error {
			order = append(order, "ownership")
			assert.Equal(t, ownRow.ID, ownershipID)
			return nil
		},
	}
	repo := &fakeRepo{
		findByOwnerFn: func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
			return existing, nil
		},
		deleteFn: func(ctx context.Context, resourceID id.ID) error {
			order = append(order, "resource")
			return nil
		},
	}
	var deletedURL string
	blobs := &fakeBlobs{
		deleteFn: func(ctx context.Context, bucket, imageURL string) error {
			order = append(order, "blob")
			deletedURL = imageURL
			return nil
		},
	}
	txm := &fakeTxManager{}
	svc := newTestService(repo, own, blobs, txm)

	result, err := svc.Delete(ctx, "user-1", existing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ownership", "resource", "blob"}, order)
	assert.Equal(t, existing.ID, result.ID)
	assert.Equal(t, existing.GetImage(), result.Image)
	assert.Equal(t, existing.GetImage(), deletedURL)
	assert.Equal(t, 1, txm.calls)
}

func TestServiceDeleteBlobFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	existing := newTestResource("main store")
	existing.SetImage("https://blobs.test/test-bucket/x.jpeg")

	repo := &fakeRepo{
		findByOwnerFn: func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
			return existing, nil
		},
	}
	blobs := &fakeBlobs{
		deleteFn: func(ctx context.Context, bucket, imageURL string) error {
			return apperror.NewDeleteFailed(errors.New("blob store down"))
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, blobs, &fakeTxManager{})

	result, err := svc.Delete(ctx, "user-1", existing.ID)
	require.NoError(t, err, "row removal already committed, blob failure must not surface")
	assert.Equal(t, existing.ID, result.ID)
}

func TestServiceDeleteNotOwned(t *testing.T) {
	ctx := context.Background()
	own := &fakeOwnership{
		getFn: func(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error) {
			return nil, apperror.NewNotFound("ownership", resourceID.String())
		},
	}
	repoTouched := false
	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, resourceID id.ID) error {
			repoTouched = true
			return nil
		},
	}
	svc := newTestService(repo, own, &fakeBlobs{}, &fakeTxManager{})

	_, err := svc.Delete(ctx, "intruder", id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.False(t, repoTouched)
}

func TestServiceDeleteWithoutImageSkipsBlobStore(t *testing.T) {
	ctx := context.Background()
	existing := newTestResource("main store")

	repo := &fakeRepo{
		findByOwnerFn: func(ctx context.Context, ownerID string, resourceID id.ID) (*testResource, error) {
			return existing, nil
		},
	}
	blobCalled := false
	blobs := &fakeBlobs{
		deleteFn: func(ctx context.Context, bucket, imageURL string) error {
			blobCalled = true
			return nil
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, blobs, &fakeTxManager{})

	result, err := svc.Delete(ctx, "user-1", existing.ID)
	require.NoError(t, err)
	assert.False(t, blobCalled)
	assert.Empty(t, result.Image)
}

// --- GetAll ---

func TestServiceGetAllMeta(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{
		countByOwnerFn: func(ctx context.Context, ownerID, search string) (int64, error) {
			return 5, nil
		},
		listByOwnerFn: func(ctx context.Context, ownerID string, params QueryParams) ([]*testResource, error) {
			assert.Equal(t, 2, params.Limit)
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 2, params.Offset())
			return []*testResource{newTestResource("a"), newTestResource("b")}, nil
		},
	}
	svc := newTestService(repo, &fakeOwnership{}, &fakeBlobs{}, &fakeTxManager{})

	result, err := svc.GetAll(ctx, "user-1", QueryParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Meta.Total)
	assert.Equal(t, 2, result.Meta.Limit)
	assert.Equal(t, 2, result.Meta.Page)
	assert.Equal(t, 3, result.Meta.LastPage)
	assert.Len(t, result.Data, 2)
}

func TestServiceGetByIDNotOwned(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeRepo{}, &fakeOwnership{}, &fakeBlobs{}, &fakeTxManager{})

	_, err := svc.GetByID(ctx, "intruder", id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
