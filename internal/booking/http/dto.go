package http

import (
	"time"

	"github.com/mlukashov/item-sharing-backend/internal/booking"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/request"
)

// CreateBookingBody is the JSON payload for creating a booking.
type CreateBookingBody struct {
	ItemID string    `json:"item_id" binding:"required,uuid"`
	Start  time.Time `json:"start_time" binding:"required"`
	End    time.Time `json:"end_time" binding:"required"`
}

// ListBookingsRequest defines query parameters for booking list endpoints.
type ListBookingsRequest struct {
	request.PageParams
	State string `form:"state"`
}

// BookingTag is the minimal booking reference embedded in item detail views.
type BookingTag struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start_time"`
	End      time.Time `json:"end_time"`
}

// NewBookingTag builds a BookingTag, or nil for a nil booking.
func NewBookingTag(b *booking.Booking) *BookingTag {
	if b == nil {
		return nil
	}
	return &BookingTag{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}

type bookerTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type bookedItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookingResponse is the full booking representation.
type BookingResponse struct {
	ID        string        `json:"id"`
	Item      bookedItemTag `json:"item"`
	Booker    bookerTag     `json:"booker"`
	Start     time.Time     `json:"start_time"`
	End       time.Time     `json:"end_time"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Item:      bookedItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    bookerTag{ID: b.BookerID, Name: b.BookerName},
		Start:     b.Start,
		End:       b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
