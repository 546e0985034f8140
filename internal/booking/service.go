package booking

import (
	"context"

	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mlukashov/item-sharing-backend/internal/pkg/request"
)

// CreateRequest carries a validated booking creation payload.
type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// Service is the booking engine: it owns the booking state machine and is
// the sole mutator of booking status.
type Service interface {
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, actingUserID, bookingID string, approved bool) (*Booking, error)
	GetByID(ctx context.Context, actingUserID, bookingID string) (*Booking, error)
	ListByBooker(ctx context.Context, userID string, state State, from, size int) ([]*Booking, int, error)
	ListByOwner(ctx context.Context, userID string, state State, from, size int) ([]*Booking, int, error)

	// LastForItem and NextForItem are read-only annotations for item detail
	// views; both consider APPROVED bookings only and return nil when none
	// qualifies.
	LastForItem(ctx context.Context, itemID string) (*Booking, error)
	NextForItem(ctx context.Context, itemID string) (*Booking, error)

	// CanComment reports whether the user finished an approved booking of
	// the item, which is the precondition for commenting on it.
	CanComment(ctx context.Context, userID, itemID string) (bool, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	items ItemCatalog
	clock clockwork.Clock
	log   zerolog.Logger
}

// NewService creates the booking engine.
func NewService(repo Repository, users UserDirectory, items ItemCatalog, clock clockwork.Clock, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clock: clock,
		log:   log.With().Str("component", "booking").Logger(),
	}
}

func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	exists, err := s.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	item, err := s.items.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}
	if item.OwnerID == bookerID {
		return nil, ErrOwnItem
	}

	if !req.Start.Before(req.End) {
		return nil, ErrInvalidTimeRange
	}
	// Present-or-future policy: start == now is accepted.
	if req.Start.Before(s.clock.Now()) {
		return nil, ErrStartInPast
	}

	b := &Booking{
		ItemID:   req.ItemID,
		BookerID: bookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   StatusWaiting,
	}

	// The repository runs the overlap check and the insert under a per-item
	// lock, so overlapping concurrent creations cannot both commit.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", b.ID).
		Str("item_id", b.ItemID).
		Str("booker_id", b.BookerID).
		Msg("booking created")

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Approve(ctx context.Context, actingUserID, bookingID string, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != actingUserID {
		return nil, ErrNotOwner
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	if approved {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", b.ID).
		Str("status", string(b.Status)).
		Msg("booking decided")

	return b, nil
}

func (s *service) GetByID(ctx context.Context, actingUserID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != actingUserID && b.ItemOwnerID != actingUserID {
		return nil, ErrNotParticipant
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID string, state State, from, size int) ([]*Booking, int, error) {
	if err := s.checkListArgs(ctx, userID, from, size); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByBooker(ctx, userID, state, s.clock.Now(), from, size)
}

func (s *service) ListByOwner(ctx context.Context, userID string, state State, from, size int) ([]*Booking, int, error) {
	if err := s.checkListArgs(ctx, userID, from, size); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByOwner(ctx, userID, state, s.clock.Now(), from, size)
}

func (s *service) checkListArgs(ctx context.Context, userID string, from, size int) error {
	if from < 0 || size <= 0 {
		return request.ErrBadPaging
	}
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func (s *service) LastForItem(ctx context.Context, itemID string) (*Booking, error) {
	return s.repo.LastForItem(ctx, itemID, s.clock.Now())
}

func (s *service) NextForItem(ctx context.Context, itemID string) (*Booking, error) {
	return s.repo.NextForItem(ctx, itemID, s.clock.Now())
}

func (s *service) CanComment(ctx context.Context, userID, itemID string) (bool, error) {
	return s.repo.HasFinishedBooking(ctx, itemID, userID, s.clock.Now())
}
