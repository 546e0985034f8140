package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mlukashov/item-sharing-backend/internal/api"
	"github.com/mlukashov/item-sharing-backend/internal/auth"
	"github.com/mlukashov/item-sharing-backend/internal/booking"
	"github.com/mlukashov/item-sharing-backend/internal/comment"
	"github.com/mlukashov/item-sharing-backend/internal/config"
	"github.com/mlukashov/item-sharing-backend/internal/item"
	"github.com/mlukashov/item-sharing-backend/internal/itemrequest"
	"github.com/mlukashov/item-sharing-backend/internal/photo"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/storage"
	"github.com/mlukashov/item-sharing-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
	Tokens *auth.TokenManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, log zerolog.Logger) (*Container, error) {
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	clock := clockwork.NewRealClock()

	// User module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, hasher)

	// Repositories the adapters below are built on.
	itemRepo := item.NewPgxRepository(pool)
	requestRepo := itemrequest.NewPgxRepository(pool)

	// Booking engine
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, userService, &itemCatalog{items: itemRepo}, clock, log)

	// Comment module
	commentRepo := comment.NewPgxRepository(pool)
	commentService := comment.NewService(commentRepo, bookingService, &itemChecker{items: itemRepo}, log)

	// Item module
	itemService := item.NewService(itemRepo, userService, &requestChecker{requests: requestRepo}, bookingService, commentService, log)

	// Item request module
	requestService := itemrequest.NewService(requestRepo, userService, itemService, log)

	// Photo module
	blobs, err := storage.NewLocal(cfg.PhotoStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}
	photoRepo := photo.NewPgxRepository(pool)
	photoService := photo.NewService(photoRepo, blobs, 0, log)

	router := api.NewRouter(cfg, api.Services{
		Users:    userService,
		Items:    itemService,
		Comments: commentService,
		Bookings: bookingService,
		Requests: requestService,
		Photos:   photoService,
	}, tokens, log)

	return &Container{
		Router: router,
		Tokens: tokens,
	}, nil
}
