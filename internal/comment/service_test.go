package comment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommentRepo struct {
	comments []*Comment
	seq      int
}

func (r *fakeCommentRepo) Create(ctx context.Context, c *Comment) error {
	r.seq++
	c.ID = fmt.Sprintf("comment-%d", r.seq)
	c.AuthorName = "Author " + c.AuthorID
	c.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cp := *c
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *fakeCommentRepo) ListByItem(ctx context.Context, itemID string) ([]*Comment, error) {
	var out []*Comment
	for _, c := range r.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error) {
	out := map[string][]*Comment{}
	for _, id := range itemIDs {
		cs, _ := r.ListByItem(ctx, id)
		if len(cs) > 0 {
			out[id] = cs
		}
	}
	return out, nil
}

// gateFunc adapts a function to the BookingGate interface.
type gateFunc func(userID, itemID string) bool

func (f gateFunc) CanComment(ctx context.Context, userID, itemID string) (bool, error) {
	return f(userID, itemID), nil
}

type checkerSet map[string]bool

func (s checkerSet) Exists(ctx context.Context, itemID string) (bool, error) {
	return s[itemID], nil
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	items := checkerSet{"item-1": true}

	t.Run("finished booker may comment", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		svc := NewService(repo, gateFunc(func(userID, itemID string) bool { return userID == "booker" }), items, zerolog.Nop())

		c, err := svc.Create(ctx, "booker", "item-1", "  great drill  ")
		require.NoError(t, err)
		assert.Equal(t, "great drill", c.Text)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.AuthorName)
	})

	t.Run("empty text", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		svc := NewService(repo, gateFunc(func(string, string) bool { return true }), items, zerolog.Nop())

		_, err := svc.Create(ctx, "booker", "item-1", "   ")
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("unknown item", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		svc := NewService(repo, gateFunc(func(string, string) bool { return true }), items, zerolog.Nop())

		_, err := svc.Create(ctx, "booker", "missing", "text")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("user without finished booking", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		svc := NewService(repo, gateFunc(func(string, string) bool { return false }), items, zerolog.Nop())

		_, err := svc.Create(ctx, "stranger", "item-1", "never used it")
		assert.ErrorIs(t, err, ErrNotBooked)
		assert.Empty(t, repo.comments)
	})
}
