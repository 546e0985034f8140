package itemrequest

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashov/item-sharing-backend/internal/item"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/request"
)

type fakeRequestRepo struct {
	byID map[string]*Request
	seq  int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: map[string]*Request{}}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *Request) error {
	r.seq++
	req.ID = fmt.Sprintf("request-%d", r.seq)
	req.RequesterName = "User " + req.RequesterID
	stored := *req
	r.byID[req.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (*Request, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]*Request, error) {
	var out []*Request
	for _, req := range r.byID {
		if req.RequesterID == requesterID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListOthers(ctx context.Context, requesterID string, from, size int) ([]*Request, int, error) {
	var out []*Request
	for _, req := range r.byID {
		if req.RequesterID != requesterID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

type userSet map[string]bool

func (s userSet) Exists(ctx context.Context, userID string) (bool, error) { return s[userID], nil }

type fakeItemFinder map[string][]*item.Item

func (f fakeItemFinder) ListByRequests(ctx context.Context, requestIDs []string) (map[string][]*item.Item, error) {
	out := map[string][]*item.Item{}
	for _, id := range requestIDs {
		if items := f[id]; len(items) > 0 {
			out[id] = items
		}
	}
	return out, nil
}

func newRequestFixture() (Service, *fakeRequestRepo, fakeItemFinder) {
	repo := newFakeRequestRepo()
	finder := fakeItemFinder{}
	svc := NewService(repo, userSet{"alice": true, "bob": true}, finder, zerolog.Nop())
	return svc, repo, finder
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with trimmed description", func(t *testing.T) {
		svc, _, _ := newRequestFixture()
		req, err := svc.Create(ctx, "alice", "  need a drill  ")
		require.NoError(t, err)
		assert.Equal(t, "need a drill", req.Description)
		assert.NotEmpty(t, req.ID)
		assert.NotEmpty(t, req.RequesterName)
	})

	t.Run("empty description", func(t *testing.T) {
		svc, _, _ := newRequestFixture()
		_, err := svc.Create(ctx, "alice", "   ")
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("unknown requester", func(t *testing.T) {
		svc, _, _ := newRequestFixture()
		_, err := svc.Create(ctx, "ghost", "need a drill")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestListOwn(t *testing.T) {
	ctx := context.Background()
	svc, _, finder := newRequestFixture()

	req, err := svc.Create(ctx, "alice", "need a drill")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "need a ladder")
	require.NoError(t, err)

	finder[req.ID] = []*item.Item{{ID: "item-1", Name: "Drill"}}

	details, err := svc.ListOwn(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, req.ID, details[0].Request.ID)
	require.Len(t, details[0].Items, 1)
	assert.Equal(t, "Drill", details[0].Items[0].Name)

	_, err = svc.ListOwn(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListAll(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newRequestFixture()

	mine, err := svc.Create(ctx, "alice", "need a drill")
	require.NoError(t, err)
	others, err := svc.Create(ctx, "bob", "need a ladder")
	require.NoError(t, err)

	details, total, err := svc.ListAll(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, details, 1)
	assert.Equal(t, others.ID, details[0].Request.ID)
	assert.NotEqual(t, mine.ID, details[0].Request.ID)

	_, _, err = svc.ListAll(ctx, "alice", -1, 10)
	assert.ErrorIs(t, err, request.ErrBadPaging)
}

func TestGetByIDAndExists(t *testing.T) {
	ctx := context.Background()
	svc, _, finder := newRequestFixture()

	req, err := svc.Create(ctx, "alice", "need a drill")
	require.NoError(t, err)
	finder[req.ID] = []*item.Item{{ID: "item-1"}}

	// Any registered user may view any request.
	d, err := svc.GetByID(ctx, req.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, req.ID, d.Request.ID)
	assert.Len(t, d.Items, 1)

	_, err = svc.GetByID(ctx, "missing", "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, req.ID, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	ok, err := svc.Exists(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
