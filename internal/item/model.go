package item

import (
	"time"

	"github.com/mlukashov/item-sharing-backend/internal/booking"
	"github.com/mlukashov/item-sharing-backend/internal/comment"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "item not found")
	ErrOwnerNotFound    = apperror.New(apperror.KindNotFound, "owner not found")
	ErrRequestNotFound  = apperror.New(apperror.KindNotFound, "item request not found")
	ErrNotOwner         = apperror.New(apperror.KindForbidden, "only the item owner can modify the item")
	ErrEmptyName        = apperror.New(apperror.KindInvalidArgument, "name cannot be empty")
	ErrEmptyDescription = apperror.New(apperror.KindInvalidArgument, "description cannot be empty")
)

// Item is a thing its owner offers for sharing.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string // optional link to the item request this item answers
	PhotoID     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Detail is an item together with its comments, and, for the owner's view,
// the closest finished and upcoming approved bookings.
type Detail struct {
	Item        *Item
	LastBooking *booking.Booking
	NextBooking *booking.Booking
	Comments    []*comment.Comment
}
