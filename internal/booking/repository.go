package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the durable booking store consumed by the engine.
type Repository interface {
	// Create atomically runs the overlap check and the insert for the
	// booking's item, so two concurrent creations for overlapping ranges on
	// the same item cannot both commit. Returns ErrOverlap on conflict.
	Create(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)

	// Update persists the booking's status. Status is the only mutable field.
	Update(ctx context.Context, b *Booking) error

	// ListByBooker and ListByOwner return one page of the user's bookings
	// matching the state filter, ordered by start time descending, plus the
	// total count for that filter.
	ListByBooker(ctx context.Context, bookerID string, state State, now time.Time, from, size int) ([]*Booking, int, error)
	ListByOwner(ctx context.Context, ownerID string, state State, now time.Time, from, size int) ([]*Booking, int, error)

	// LastForItem returns the APPROVED booking with the greatest end before
	// now, or nil if there is none. NextForItem is its mirror: the APPROVED
	// booking with the smallest start after now.
	LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)

	// HasFinishedBooking reports whether the user has an APPROVED booking of
	// the item that ended before now.
	HasFinishedBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by Postgres.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectBookings() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize conflicting creations per item for the duration of the
	// transaction. hashtext folds the item uuid into the bigint lock keyspace.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", b.ItemID); err != nil {
		return fmt.Errorf("acquire item lock failed: %w", err)
	}

	overlapSQL, overlapArgs, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": b.ItemID}).
		Where(squirrel.Eq{"status": []Status{StatusWaiting, StatusApproved}}).
		Where(squirrel.Lt{"start_time": b.End}).
		Where(squirrel.Gt{"end_time": b.Start}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build overlap query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+overlapSQL+")", overlapArgs...).Scan(&exists); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrOverlap
	}

	insertSQL, insertArgs, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// applyState translates a state filter into WHERE clauses against now.
// CURRENT is start <= now < end; PAST is end < now strictly; FUTURE is
// start > now.
func applyState(q squirrel.SelectBuilder, state State, now time.Time) squirrel.SelectBuilder {
	switch state {
	case StateCurrent:
		return q.Where(squirrel.LtOrEq{"b.start_time": now}).Where(squirrel.Gt{"b.end_time": now})
	case StatePast:
		return q.Where(squirrel.Lt{"b.end_time": now})
	case StateFuture:
		return q.Where(squirrel.Gt{"b.start_time": now})
	case StateWaiting:
		return q.Where(squirrel.Eq{"b.status": StatusWaiting})
	case StateRejected:
		return q.Where(squirrel.Eq{"b.status": StatusRejected})
	default:
		return q
	}
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID string, state State, now time.Time, from, size int) ([]*Booking, int, error) {
	return r.listPage(ctx, squirrel.Eq{"b.booker_id": bookerID}, state, now, from, size)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, state State, now time.Time, from, size int) ([]*Booking, int, error) {
	return r.listPage(ctx, squirrel.Eq{"i.owner_id": ownerID}, state, now, from, size)
}

func (r *pgxRepository) listPage(ctx context.Context, where squirrel.Sqlizer, state State, now time.Time, from, size int) ([]*Booking, int, error) {
	q := applyState(selectBookings().Where(where), state, now).
		Column("count(*) OVER() AS total_count").
		OrderBy("b.start_time DESC")

	// Offset pagination mirrors the page index the caller lands on: from
	// values that are not exact multiples of size alias to the containing
	// page.
	page := from / size
	q = q.Limit(uint64(size)).Offset(uint64(page * size))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
			&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// The window count rides on the result rows, so a page past the end
	// comes back empty with no count. Count separately in that case.
	if len(bookings) == 0 {
		total, err = r.count(ctx, where, state, now)
		if err != nil {
			return nil, 0, err
		}
	}

	return bookings, total, nil
}

func (r *pgxRepository) count(ctx context.Context, where squirrel.Sqlizer, state State, now time.Time) (int, error) {
	q := applyState(psql.Select("count(*)").
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Where(where), state, now)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bookings query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return total, nil
}

func (r *pgxRepository) LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	q := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		Where(squirrel.Lt{"b.end_time": now}).
		OrderBy("b.end_time DESC").
		Limit(1)
	return r.one(ctx, q)
}

func (r *pgxRepository) NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	q := selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": StatusApproved}).
		Where(squirrel.Gt{"b.start_time": now}).
		OrderBy("b.start_time ASC").
		Limit(1)
	return r.one(ctx, q)
}

func (r *pgxRepository) one(ctx context.Context, q squirrel.SelectBuilder) (*Booking, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) HasFinishedBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"booker_id": bookerID}).
		Where(squirrel.Eq{"status": StatusApproved}).
		Where(squirrel.Lt{"end_time": now}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build finished booking query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}
