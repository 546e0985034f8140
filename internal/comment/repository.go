package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists and queries comments.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	ListByItem(ctx context.Context, itemID string) ([]*Comment, error)
	ListByItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by Postgres.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Comment) error {
	const query = `
		WITH inserted AS (
			INSERT INTO public.comments (item_id, author_id, text)
			VALUES ($1, $2, $3)
			RETURNING id, author_id, created_at
		)
		SELECT i.id, i.created_at, u.name
		FROM inserted i
		JOIN public.users u ON i.author_id = u.id
	`

	err := r.pool.QueryRow(ctx, query, c.ItemID, c.AuthorID, c.Text).
		Scan(&c.ID, &c.CreatedAt, &c.AuthorName)
	if err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

const commentSelect = `
	SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
	FROM public.comments c
	JOIN public.users u ON c.author_id = u.id
`

func (r *pgxRepository) ListByItem(ctx context.Context, itemID string) ([]*Comment, error) {
	const query = commentSelect + `
		WHERE c.item_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *pgxRepository) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error) {
	if len(itemIDs) == 0 {
		return map[string][]*Comment{}, nil
	}

	const query = commentSelect + `
		WHERE c.item_id = ANY($1)
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	byItem := make(map[string][]*Comment, len(itemIDs))
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		byItem[c.ItemID] = append(byItem[c.ItemID], &c)
	}
	return byItem, rows.Err()
}
