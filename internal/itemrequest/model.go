package itemrequest

import (
	"time"

	"github.com/mlukashov/item-sharing-backend/internal/item"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "item request not found")
	ErrUserNotFound     = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmptyDescription = apperror.New(apperror.KindInvalidArgument, "description cannot be empty")
)

// Request is a user's "I need X" post that other users' items can answer.
type Request struct {
	ID            string
	RequesterID   string
	RequesterName string
	Description   string
	CreatedAt     time.Time
}

// Detail is a request together with the items offered in response to it.
type Detail struct {
	Request *Request
	Items   []*item.Item
}
