package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists and queries item requests.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*Request, error)

	// ListOthers returns one page of requests posted by anyone but the given
	// user, newest first, plus the total count.
	ListOthers(ctx context.Context, userID string, from, size int) ([]*Request, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by Postgres.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const requestSelect = `
	SELECT r.id, r.requester_id, u.name, r.description, r.created_at
	FROM public.item_requests r
	JOIN public.users u ON r.requester_id = u.id
`

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	const query = `
		INSERT INTO public.item_requests (requester_id, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, req.RequesterID, req.Description).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	const query = requestSelect + ` WHERE r.id = $1`

	var req Request
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.Description, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID string) ([]*Request, error) {
	const query = requestSelect + `
		WHERE r.requester_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *pgxRepository) ListOthers(ctx context.Context, userID string, from, size int) ([]*Request, int, error) {
	const query = `
		SELECT r.id, r.requester_id, u.name, r.description, r.created_at,
			count(*) OVER() AS total_count
		FROM public.item_requests r
		JOIN public.users u ON r.requester_id = u.id
		WHERE r.requester_id <> $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	page := from / size
	rows, err := r.pool.Query(ctx, query, userID, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	var total int
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.Description, &req.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// A page past the end yields no rows for the window count to ride on.
	if len(requests) == 0 {
		const countQuery = `SELECT count(*) FROM public.item_requests WHERE requester_id <> $1`
		if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count item requests failed: %w", err)
		}
	}
	return requests, total, nil
}

func scanRequests(rows pgx.Rows) ([]*Request, error) {
	var requests []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.RequesterName, &req.Description, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}
