package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byID map[string]*User
	seq  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	for _, e := range r.byID {
		if e.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	stored := *u
	r.byID[u.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	stored := *u
	r.byID[u.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var all []*User
	for _, u := range r.byID {
		cp := *u
		all = append(all, &cp)
	}
	return all, len(all), nil
}

// plainHasher keeps passwords inspectable in tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

func newTestService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, plainHasher{}), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email and trims name", func(t *testing.T) {
		svc, _ := newTestService()
		u, err := svc.Register(ctx, "  Alice@Example.COM ", "sturdy-password", "  Alice ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, "Alice", u.Name)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "hash:sturdy-password", u.PasswordHash)
	})

	t.Run("blank email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "   ", "sturdy-password", "Alice")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("blank name", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "alice@example.com", "sturdy-password", "  ")
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "alice@example.com", "short", "Alice")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "alice@example.com", "sturdy-password", "Alice")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "ALICE@example.com", "other-password", "Impostor")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	registered, err := svc.Register(ctx, "alice@example.com", "sturdy-password", "Alice")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "Alice@Example.com", "sturdy-password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "sturdy-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, "alice@example.com", "sturdy-password", "Alice")
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, "alice@example.com", "sturdy-password", "Alice")
	require.NoError(t, err)

	t.Run("self update", func(t *testing.T) {
		newName := " Alice B. "
		got, err := svc.Update(ctx, u.ID, UpdateRequest{Name: &newName}, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice B.", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("update by someone else", func(t *testing.T) {
		newName := "Mallory"
		_, err := svc.Update(ctx, u.ID, UpdateRequest{Name: &newName}, "someone-else")
		assert.ErrorIs(t, err, ErrNotSelf)
	})

	t.Run("blank email update", func(t *testing.T) {
		blank := "  "
		_, err := svc.Update(ctx, u.ID, UpdateRequest{Email: &blank}, u.ID)
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("delete by someone else", func(t *testing.T) {
		err := svc.Delete(ctx, u.ID, "someone-else")
		assert.ErrorIs(t, err, ErrNotSelf)
	})

	t.Run("self delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, u.ID, u.ID))
		ok, err := svc.Exists(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
