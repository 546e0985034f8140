package itemrequest

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mlukashov/item-sharing-backend/internal/item"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/request"
)

// UserDirectory answers user existence checks.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// ItemFinder resolves the items offered in response to requests. Satisfied
// by the item service.
type ItemFinder interface {
	ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*item.Item, error)
}

// Service defines business logic for "I need X" requests.
type Service interface {
	Create(ctx context.Context, requesterID, description string) (*Request, error)
	ListOwn(ctx context.Context, requesterID string) ([]*Detail, error)
	ListAll(ctx context.Context, userID string, from, size int) ([]*Detail, int, error)
	GetByID(ctx context.Context, id, userID string) (*Detail, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	items ItemFinder
	log   zerolog.Logger
}

// NewService creates a new item request Service.
func NewService(repo Repository, users UserDirectory, items ItemFinder, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		log:   log.With().Str("component", "itemrequest").Logger(),
	}
}

func (s *service) Create(ctx context.Context, requesterID, description string) (*Request, error) {
	cleanDesc := strings.TrimSpace(description)
	if cleanDesc == "" {
		return nil, ErrEmptyDescription
	}

	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &Request{
		RequesterID: requesterID,
		Description: cleanDesc,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info().Str("request_id", req.ID).Str("requester_id", requesterID).Msg("item request created")
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID string) ([]*Detail, error) {
	if err := s.checkUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *service) ListAll(ctx context.Context, userID string, from, size int) ([]*Detail, int, error) {
	if from < 0 || size <= 0 {
		return nil, 0, request.ErrBadPaging
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, 0, err
	}

	requests, total, err := s.repo.ListOthers(ctx, userID, from, size)
	if err != nil {
		return nil, 0, err
	}

	details, err := s.withItems(ctx, requests)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *service) GetByID(ctx context.Context, id, userID string) (*Detail, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.withItems(ctx, []*Request{req})
	if err != nil {
		return nil, err
	}
	return details[0], nil
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

func (s *service) checkUser(ctx context.Context, userID string) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func (s *service) withItems(ctx context.Context, requests []*Request) ([]*Detail, error) {
	ids := make([]string, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}

	byRequest, err := s.items.ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, len(requests))
	for i, r := range requests {
		details[i] = &Detail{Request: r, Items: byRequest[r.ID]}
	}
	return details, nil
}
