// Package ownership_repo provides the PostgreSQL implementation of the
// ownership join-table repository. One Repo instance serves one join
// table; the resource foreign key column is aliased to resource_id so
// both tables scan into the same struct.
package ownership_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"backroom/internal/core/apperror"
	"backroom/internal/core/id"
	"backroom/internal/domain/ownership"
	"backroom/internal/infrastructure/storage/postgres"
)

// Compile-time check that Repo implements the repository contract.
var _ ownership.Repository = (*Repo)(nil)

// Repo persists ownership rows for one join table.
type Repo struct {
	txm *postgres.TxManager

	tableName string

	// resourceCol is the foreign key column (store_id, warehouse_id).
	resourceCol string
}

// NewRepo creates an ownership repository over one join table.
func NewRepo(txm *postgres.TxManager, tableName, resourceCol string) *Repo {
	return &Repo{
		txm:         txm,
		tableName:   tableName,
		resourceCol: resourceCol,
	}
}

// NewUserStoresRepo creates the repository for store ownership.
func NewUserStoresRepo(txm *postgres.TxManager) *Repo {
	return NewRepo(txm, "user_stores", "store_id")
}

// NewUserWarehousesRepo creates the repository for warehouse ownership.
func NewUserWarehousesRepo(txm *postgres.TxManager) *Repo {
	return NewRepo(txm, "user_warehouses", "warehouse_id")
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Insert adds a join row.
func (r *Repo) Insert(ctx context.Context, own *ownership.Ownership) error {
	q := r.Builder().
		Insert(r.tableName).
		SetMap(map[string]any{
			"id":          own.ID,
			"user_id":     own.UserID,
			r.resourceCol: own.ResourceID,
			"created_at":  own.CreatedAt,
			"updated_at":  own.UpdatedAt,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate(r.tableName, "resource", own.ResourceID.String()).WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// FindByUserAndResource returns the join row for the pair, NOT_FOUND when absent.
func (r *Repo) FindByUserAndResource(ctx context.Context, userID string, resourceID id.ID) (*ownership.Ownership, error) {
	q := r.Builder().
		Select(
			"id",
			"user_id",
			r.resourceCol+" AS resource_id",
			"created_at",
			"updated_at",
		).
		From(r.tableName).
		Where(squirrel.Eq{
			"user_id":     userID,
			r.resourceCol: resourceID,
		}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	own := &ownership.Ownership{}
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, own, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(r.tableName, resourceID.String())
		}
		return nil, fmt.Errorf("find by user and resource: %w", err)
	}

	return own, nil
}

// DeleteByTriple removes the row matching all three identifiers and
// returns the number of rows removed.
func (r *Repo) DeleteByTriple(ctx context.Context, userID string, resourceID, ownershipID id.ID) (int64, error) {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{
			"id":          ownershipID,
			"user_id":     userID,
			r.resourceCol: resourceID,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", r.tableName, err)
	}

	return result.RowsAffected(), nil
}
