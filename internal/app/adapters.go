package app

import (
	"context"
	"errors"

	"github.com/mlukashov/item-sharing-backend/internal/booking"
	"github.com/mlukashov/item-sharing-backend/internal/item"
	"github.com/mlukashov/item-sharing-backend/internal/itemrequest"
)

// itemCatalog adapts the item repository to the booking engine's catalog
// view of items.
type itemCatalog struct {
	items item.Repository
}

func (a *itemCatalog) Get(ctx context.Context, itemID string) (*booking.CatalogItem, error) {
	i, err := a.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, booking.ErrItemNotFound
		}
		return nil, err
	}
	return &booking.CatalogItem{
		ID:        i.ID,
		OwnerID:   i.OwnerID,
		Available: i.Available,
	}, nil
}

// itemChecker adapts the item repository to existence checks. Used by the
// comment module, which must not depend on the item service.
type itemChecker struct {
	items item.Repository
}

func (a *itemChecker) Exists(ctx context.Context, itemID string) (bool, error) {
	_, err := a.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// requestChecker adapts the item-request repository to existence checks for
// the item module.
type requestChecker struct {
	requests itemrequest.Repository
}

func (a *requestChecker) Exists(ctx context.Context, requestID string) (bool, error) {
	_, err := a.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, itemrequest.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
