// Package resource_repo provides PostgreSQL implementations of the
// resource repositories. Every read joins the ownership table, so rows
// belonging to other users never leave the database layer.
package resource_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/domain/resource"
	"backroom/internal/infrastructure/storage/postgres"
)

// searchColumns are matched against the search term with ILIKE.
var searchColumns = []string{"t.name", "t.slug", "t.address"}

// BaseResourceRepo provides common CRUD operations for resource tables.
// Embed this in specific resource repositories.
type BaseResourceRepo[T resource.Entity] struct {
	txm *postgres.TxManager

	tableName string

	// joinTable/joinCol describe the ownership join
	// (user_stores.store_id, user_warehouses.warehouse_id).
	joinTable string
	joinCol   string

	selectCols []string
	newFn      func() T
}

// NewBaseResourceRepo creates a base repository for one resource table.
func NewBaseResourceRepo[T resource.Entity](
	txm *postgres.TxManager,
	tableName, joinTable, joinCol string,
	selectCols []string,
	newFn func() T,
) *BaseResourceRepo[T] {
	return &BaseResourceRepo[T]{
		txm:        txm,
		tableName:  tableName,
		joinTable:  joinTable,
		joinCol:    joinCol,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseResourceRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert adds a new resource row using its "db" tags.
func (r *BaseResourceRepo[T]) Insert(ctx context.Context, res T) error {
	data := postgres.StructToMap(res)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	// Filter to only include columns that exist in DB
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return r.translateError("insert", err)
	}

	return nil
}

// Update replaces mutable columns of an existing row. Last write wins.
func (r *BaseResourceRepo[T]) Update(ctx context.Context, res T) error {
	data := postgres.StructToMap(res)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	// Exclude immutable fields from SET
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return r.translateError("update", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID)
	}

	return nil
}

// Delete removes the row physically.
func (r *BaseResourceRepo[T]) Delete(ctx context.Context, resourceID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": resourceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return r.translateError("delete", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, resourceID.String())
	}

	return nil
}

// ownedSelect creates a SELECT builder joined to the ownership table
// and filtered to the given owner.
func (r *BaseResourceRepo[T]) ownedSelect(ownerID string) squirrel.SelectBuilder {
	prefixed := make([]string, len(r.selectCols))
	for i, col := range r.selectCols {
		prefixed[i] = "t." + col
	}

	return r.Builder().
		Select(prefixed...).
		From(r.tableName + " t").
		Join(fmt.Sprintf("%s j ON j.%s = t.id", r.joinTable, r.joinCol)).
		Where(squirrel.Eq{"j.user_id": ownerID})
}

// applySearch adds the ILIKE search condition when a term is present.
func applySearch(q squirrel.SelectBuilder, search string) squirrel.SelectBuilder {
	if search == "" {
		return q
	}
	pattern := "%" + search + "%"
	or := make(squirrel.Or, 0, len(searchColumns))
	for _, col := range searchColumns {
		or = append(or, squirrel.ILike{col: pattern})
	}
	return q.Where(or)
}

// FindByOwner retrieves a resource the given user owns.
func (r *BaseResourceRepo[T]) FindByOwner(ctx context.Context, ownerID string, resourceID id.ID) (T, error) {
	res := r.newFn()

	q := r.ownedSelect(ownerID).
		Where(squirrel.Eq{"t.id": resourceID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return res, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, res, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return res, apperror.NewNotFound(r.tableName, resourceID.String())
		}
		return res, fmt.Errorf("find by owner: %w", err)
	}

	return res, nil
}

// ListByOwner retrieves a page of the user's resources.
// Params must be normalized by the caller; Sort is matched against the
// whitelist again here as the last line of defense before interpolation.
func (r *BaseResourceRepo[T]) ListByOwner(ctx context.Context, ownerID string, params resource.QueryParams) ([]T, error) {
	params = params.Normalize()

	q := applySearch(r.ownedSelect(ownerID), params.Search).
		OrderBy(fmt.Sprintf("t.%s %s", params.Sort, params.Order)).
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset()))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by owner: %w", err)
	}

	return items, nil
}

// CountByOwner counts the user's resources matching the search term.
func (r *BaseResourceRepo[T]) CountByOwner(ctx context.Context, ownerID string, search string) (int64, error) {
	q := applySearch(r.countSelect(ownerID), search)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by owner: %w", err)
	}

	return count, nil
}

// CountByOwnerAndName counts rows whose trimmed, lowercased name equals
// the given one, optionally excluding one resource id (rename checks).
func (r *BaseResourceRepo[T]) CountByOwnerAndName(ctx context.Context, ownerID, name string, excludeID id.ID) (int64, error) {
	q := r.countSelect(ownerID).
		Where(squirrel.Expr("lower(btrim(t.name)) = lower(btrim(?))", name))

	if !id.IsNil(excludeID) {
		q = q.Where(squirrel.NotEq{"t.id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by owner and name: %w", err)
	}

	return count, nil
}

// countSelect is ownedSelect with COUNT(*) instead of the column list.
func (r *BaseResourceRepo[T]) countSelect(ownerID string) squirrel.SelectBuilder {
	return r.Builder().
		Select("COUNT(*)").
		From(r.tableName + " t").
		Join(fmt.Sprintf("%s j ON j.%s = t.id", r.joinTable, r.joinCol)).
		Where(squirrel.Eq{"j.user_id": ownerID})
}

// translateError maps PostgreSQL constraint violations to domain errors.
// The unique violation is the backstop for the service-level name
// pre-check, which races with concurrent creates.
func (r *BaseResourceRepo[T]) translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperror.NewConflict(
				fmt.Sprintf("%s violates unique constraint %s", r.tableName, pgErr.ConstraintName),
			).WithCause(err)
		case "23503":
			return apperror.NewConflict(
				fmt.Sprintf("%s is referenced by other records", r.tableName),
			).WithCause(err)
		}
	}
	return fmt.Errorf("%s %s: %w", op, r.tableName, err)
}
