package booking

import (
	"context"
	"strings"
	"time"

	"github.com/mlukashov/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "booking not found")
	ErrUserNotFound     = apperror.New(apperror.KindNotFound, "user not found")
	ErrItemNotFound     = apperror.New(apperror.KindNotFound, "item not found")
	ErrItemUnavailable  = apperror.New(apperror.KindConflict, "item is not available for booking")
	ErrOwnItem          = apperror.New(apperror.KindForbidden, "owner cannot book their own item")
	ErrInvalidTimeRange = apperror.New(apperror.KindInvalidArgument, "start time must be before end time")
	ErrStartInPast      = apperror.New(apperror.KindInvalidArgument, "start time cannot be in the past")
	ErrOverlap          = apperror.New(apperror.KindConflict, "requested period overlaps an existing booking")
	ErrNotOwner         = apperror.New(apperror.KindForbidden, "only the item owner can approve or reject a booking")
	ErrAlreadyDecided   = apperror.New(apperror.KindConflict, "booking status is already set")
	ErrNotParticipant   = apperror.New(apperror.KindForbidden, "only the booker or the item owner can view this booking")
	ErrUnknownState     = apperror.New(apperror.KindInvalidArgument, "unknown state filter")
)

// Status is a booking's approval status. A booking is created WAITING and
// moves exactly once to APPROVED or REJECTED by the item owner. CANCELED is
// part of the status domain for completeness but no operation produces it.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// blocking reports whether a booking in this status holds its time slot for
// the purposes of the creation-time overlap check.
func (s Status) blocking() bool {
	return s == StatusWaiting || s == StatusApproved
}

// State selects a temporal or status slice of a user's bookings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState parses a state filter string; empty means ALL.
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	switch State(strings.ToUpper(s)) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	default:
		return "", ErrUnknownState
	}
}

// Booking is a time-bounded reservation of an item by a user.
// ItemName, ItemOwnerID and BookerName are denormalized from joins for
// response shaping and authorization; only Status is ever mutated after
// creation.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogItem is the engine's view of an item: just enough to run the
// creation-time checks.
type CatalogItem struct {
	ID        string
	OwnerID   string
	Available bool
}

// ItemCatalog resolves items for the engine. Implementations return
// ErrItemNotFound for missing ids.
type ItemCatalog interface {
	Get(ctx context.Context, itemID string) (*CatalogItem, error)
}

// UserDirectory answers user existence checks for the engine.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}
