package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing item data from storage.
type Repository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, i *Item) error
	ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Item, int, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, int, error)
	ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*Item, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by Postgres.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const itemColumns = "id, owner_id, name, description, available, request_id, photo_id, created_at, updated_at"

func (r *pgxRepository) Create(ctx context.Context, i *Item) error {
	const query = `
		INSERT INTO public.items (owner_id, name, description, available, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, i.OwnerID, i.Name, i.Description, i.Available, i.RequestID).
		Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM public.items WHERE id = $1`

	var i Item
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available,
		&i.RequestID, &i.PhotoID, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &i, nil
}

func (r *pgxRepository) Update(ctx context.Context, i *Item) error {
	const query = `
		UPDATE public.items
		SET name = $2, description = $3, available = $4, photo_id = $5, updated_at = now()
		WHERE id = $1
	`

	ct, err := r.pool.Exec(ctx, query, i.ID, i.Name, i.Description, i.Available, i.PhotoID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Item, int, error) {
	return r.listPage(ctx, squirrel.Eq{"owner_id": ownerID}, from, size)
}

func (r *pgxRepository) Search(ctx context.Context, text string, from, size int) ([]*Item, int, error) {
	pattern := "%" + text + "%"
	where := squirrel.And{
		squirrel.Eq{"available": true},
		squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		},
	}
	return r.listPage(ctx, where, from, size)
}

func (r *pgxRepository) listPage(ctx context.Context, where squirrel.Sqlizer, from, size int) ([]*Item, int, error) {
	q := psql.Select(itemColumns, "count(*) OVER() AS total_count").
		From("public.items").
		Where(where).
		OrderBy("created_at ASC")

	page := from / size
	q = q.Limit(uint64(size)).Offset(uint64(page * size))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	var total int
	for rows.Next() {
		var i Item
		if err := rows.Scan(
			&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available,
			&i.RequestID, &i.PhotoID, &i.CreatedAt, &i.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// The window count rides on the result rows, so a page past the end
	// comes back empty with no count. Count separately in that case.
	if len(items) == 0 {
		total, err = r.count(ctx, where)
		if err != nil {
			return nil, 0, err
		}
	}

	return items, total, nil
}

func (r *pgxRepository) count(ctx context.Context, where squirrel.Sqlizer) (int, error) {
	sql, args, err := psql.Select("count(*)").
		From("public.items").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count items query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count items failed: %w", err)
	}
	return total, nil
}

func (r *pgxRepository) ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*Item, error) {
	if len(requestIDs) == 0 {
		return map[string][]*Item{}, nil
	}

	const query = `
		SELECT ` + itemColumns + `
		FROM public.items
		WHERE request_id = ANY($1)
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("list items by request failed: %w", err)
	}
	defer rows.Close()

	byRequest := make(map[string][]*Item, len(requestIDs))
	for rows.Next() {
		var i Item
		if err := rows.Scan(
			&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available,
			&i.RequestID, &i.PhotoID, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		if i.RequestID != nil {
			byRequest[*i.RequestID] = append(byRequest[*i.RequestID], &i)
		}
	}
	return byRequest, rows.Err()
}
