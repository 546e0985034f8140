package comment

import (
	"time"

	"github.com/mlukashov/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotBooked    = apperror.New(apperror.KindInvalidArgument, "only users with a finished approved booking can comment")
	ErrEmptyText    = apperror.New(apperror.KindInvalidArgument, "comment text cannot be empty")
	ErrItemNotFound = apperror.New(apperror.KindNotFound, "item not found")
)

// Comment is feedback left on an item by a past renter.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
