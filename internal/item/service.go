package item

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mlukashov/item-sharing-backend/internal/booking"
	"github.com/mlukashov/item-sharing-backend/internal/comment"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/request"
)

// CreateRequest carries a validated item creation payload.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateRequest carries a partial item update; nil fields are untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// UserDirectory answers user existence checks.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// RequestChecker answers item-request existence checks.
type RequestChecker interface {
	Exists(ctx context.Context, requestID string) (bool, error)
}

// BookingInfo supplies the booking annotations shown to item owners.
// Satisfied by the booking engine.
type BookingInfo interface {
	LastForItem(ctx context.Context, itemID string) (*booking.Booking, error)
	NextForItem(ctx context.Context, itemID string) (*booking.Booking, error)
}

// Service defines business logic related to items.
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, id string, req UpdateRequest, actingUserID string) (*Item, error)

	// GetByID returns the item with its comments. When the viewer is the
	// owner, the detail also carries the last and next approved bookings.
	GetByID(ctx context.Context, id, viewerID string) (*Detail, error)

	ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Detail, int, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, int, error)
	Exists(ctx context.Context, id string) (bool, error)
	AttachPhoto(ctx context.Context, itemID, actingUserID, photoID string) (*Item, error)
	ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*Item, error)
}

type service struct {
	repo     Repository
	users    UserDirectory
	requests RequestChecker
	bookings BookingInfo
	comments comment.Service
	log      zerolog.Logger
}

// NewService creates a new item Service.
func NewService(
	repo Repository,
	users UserDirectory,
	requests RequestChecker,
	bookings BookingInfo,
	comments comment.Service,
	log zerolog.Logger,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		log:      log.With().Str("component", "item").Logger(),
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyDescription
	}

	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOwnerNotFound
	}

	if req.RequestID != nil {
		found, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrRequestNotFound
		}
	}

	i := &Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Available:   req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", i.ID).Str("owner_id", ownerID).Msg("item created")
	return i, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actingUserID string) (*Item, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != actingUserID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		i.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrEmptyDescription
		}
		i.Description = strings.TrimSpace(*req.Description)
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) GetByID(ctx context.Context, id, viewerID string) (*Detail, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Item: i, Comments: comments}

	// Booking annotations are the owner's view only.
	if i.OwnerID == viewerID {
		if detail.LastBooking, err = s.bookings.LastForItem(ctx, id); err != nil {
			return nil, err
		}
		if detail.NextBooking, err = s.bookings.NextForItem(ctx, id); err != nil {
			return nil, err
		}
	}

	return detail, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Detail, int, error) {
	if from < 0 || size <= 0 {
		return nil, 0, request.ErrBadPaging
	}

	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrOwnerNotFound
	}

	items, total, err := s.repo.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, 0, err
	}

	itemIDs := make([]string, len(items))
	for idx, i := range items {
		itemIDs[idx] = i.ID
	}
	commentsByItem, err := s.comments.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*Detail, len(items))
	for idx, i := range items {
		d := &Detail{Item: i, Comments: commentsByItem[i.ID]}
		if d.LastBooking, err = s.bookings.LastForItem(ctx, i.ID); err != nil {
			return nil, 0, err
		}
		if d.NextBooking, err = s.bookings.NextForItem(ctx, i.ID); err != nil {
			return nil, 0, err
		}
		details[idx] = d
	}

	return details, total, nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, int, error) {
	if from < 0 || size <= 0 {
		return nil, 0, request.ErrBadPaging
	}

	// Blank search matches nothing.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, 0, nil
	}

	return s.repo.Search(ctx, strings.TrimSpace(text), from, size)
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) AttachPhoto(ctx context.Context, itemID, actingUserID, photoID string) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != actingUserID {
		return nil, ErrNotOwner
	}

	i.PhotoID = &photoID
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*Item, error) {
	return s.repo.ListByRequests(ctx, requestIDs)
}
