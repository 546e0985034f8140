package http

import (
	"time"

	bookingHttp "github.com/mlukashov/item-sharing-backend/internal/booking/http"
	"github.com/mlukashov/item-sharing-backend/internal/comment"
	"github.com/mlukashov/item-sharing-backend/internal/item"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/request"
)

type CreateItemBody struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentBody struct {
	Text string `json:"text" binding:"required"`
}

// SearchItemsRequest defines query parameters for item search.
type SearchItemsRequest struct {
	request.PageParams
	Text string `form:"text"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   *string   `json:"request_id,omitempty"`
	PhotoID     *string   `json:"photo_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
		PhotoID:     i.PhotoID,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewCommentResponse(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

// ItemDetailResponse is an item with its comments; booking annotations are
// present only in the owner's view.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *bookingHttp.BookingTag `json:"last_booking,omitempty"`
	NextBooking *bookingHttp.BookingTag `json:"next_booking,omitempty"`
	Comments    []CommentResponse       `json:"comments"`
}

func NewItemDetailResponse(d *item.Detail) ItemDetailResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = NewCommentResponse(c)
	}

	return ItemDetailResponse{
		ItemResponse: NewItemResponse(d.Item),
		LastBooking:  bookingHttp.NewBookingTag(d.LastBooking),
		NextBooking:  bookingHttp.NewBookingTag(d.NextBooking),
		Comments:     comments,
	}
}
