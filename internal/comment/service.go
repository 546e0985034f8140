package comment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// BookingGate answers whether a user may comment on an item. Satisfied by
// the booking engine.
type BookingGate interface {
	CanComment(ctx context.Context, userID, itemID string) (bool, error)
}

// ItemChecker answers item existence checks without pulling in the full
// item service.
type ItemChecker interface {
	Exists(ctx context.Context, itemID string) (bool, error)
}

// Service handles comment creation and retrieval.
type Service interface {
	Create(ctx context.Context, authorID, itemID, text string) (*Comment, error)
	ListByItem(ctx context.Context, itemID string) ([]*Comment, error)
	ListByItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error)
}

type service struct {
	repo  Repository
	gate  BookingGate
	items ItemChecker
	log   zerolog.Logger
}

// NewService creates a new comment Service.
func NewService(repo Repository, gate BookingGate, items ItemChecker, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		gate:  gate,
		items: items,
		log:   log.With().Str("component", "comment").Logger(),
	}
}

func (s *service) Create(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	cleanText := strings.TrimSpace(text)
	if cleanText == "" {
		return nil, ErrEmptyText
	}

	exists, err := s.items.Exists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrItemNotFound
	}

	// Only a booker whose approved booking has already ended may comment.
	allowed, err := s.gate.CanComment(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotBooked
	}

	c := &Comment{
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     cleanText,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Str("comment_id", c.ID).Str("item_id", itemID).Msg("comment created")
	return c, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*Comment, error) {
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error) {
	return s.repo.ListByItems(ctx, itemIDs)
}
