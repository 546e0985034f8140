package http

import (
	"time"

	itemHttp "github.com/mlukashov/item-sharing-backend/internal/item/http"
	"github.com/mlukashov/item-sharing-backend/internal/itemrequest"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID            string                  `json:"id"`
	RequesterID   string                  `json:"requester_id"`
	RequesterName string                  `json:"requester_name"`
	Description   string                  `json:"description"`
	CreatedAt     time.Time               `json:"created_at"`
	Items         []itemHttp.ItemResponse `json:"items"`
}

func NewRequestResponse(r *itemrequest.Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Description:   r.Description,
		CreatedAt:     r.CreatedAt,
		Items:         []itemHttp.ItemResponse{},
	}
}

func NewRequestDetailResponse(d *itemrequest.Detail) RequestResponse {
	resp := NewRequestResponse(d.Request)
	for _, i := range d.Items {
		resp.Items = append(resp.Items, itemHttp.NewItemResponse(i))
	}
	return resp
}
