package user

import (
	"time"

	"github.com/mlukashov/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(apperror.KindConflict, "email already used")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(apperror.KindInvalidArgument, "email is required")
	ErrNameRequired       = apperror.New(apperror.KindInvalidArgument, "name is required")
	ErrPasswordTooShort   = apperror.New(apperror.KindInvalidArgument, "password is too short")
	ErrNotSelf            = apperror.New(apperror.KindForbidden, "users can only modify their own profile")
)

// User represents a registered user.
type User struct {
	ID           string // UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Filter defines options for listing users.
type Filter struct {
	From int
	Size int
}
