package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mlukashov/item-sharing-backend/internal/auth"
	"github.com/mlukashov/item-sharing-backend/internal/booking"
	bookingHttp "github.com/mlukashov/item-sharing-backend/internal/booking/http"
	"github.com/mlukashov/item-sharing-backend/internal/comment"
	"github.com/mlukashov/item-sharing-backend/internal/config"
	"github.com/mlukashov/item-sharing-backend/internal/item"
	itemHttp "github.com/mlukashov/item-sharing-backend/internal/item/http"
	"github.com/mlukashov/item-sharing-backend/internal/itemrequest"
	itemrequestHttp "github.com/mlukashov/item-sharing-backend/internal/itemrequest/http"
	"github.com/mlukashov/item-sharing-backend/internal/photo"
	photoHttp "github.com/mlukashov/item-sharing-backend/internal/photo/http"
	"github.com/mlukashov/item-sharing-backend/internal/user"
	userHttp "github.com/mlukashov/item-sharing-backend/internal/user/http"
)

// Services groups the domain services the router exposes over HTTP.
type Services struct {
	Users    user.Service
	Items    item.Service
	Comments comment.Service
	Bookings booking.Service
	Requests itemrequest.Service
	Photos   photo.Service
}

// NewRouter assembles middleware (logging, recovery, CORS, metrics, rate
// limiting) and registers routes for all modules under /v1.
func NewRouter(cfg *config.Config, svc Services, tokens *auth.TokenManager, log zerolog.Logger) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(log), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	RegisterMetrics()
	r.Use(Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The limiter keys on the authenticated user id, so it has to run
	// after auth.Required on every protected group.
	authMiddleware := auth.Required(tokens)
	limit := RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)

	userHandler := userHttp.NewHandler(svc.Users, tokens)
	itemHandler := itemHttp.NewHandler(svc.Items, svc.Comments)
	bookingHandler := bookingHttp.NewHandler(svc.Bookings)
	requestHandler := itemrequestHttp.NewHandler(svc.Requests)
	photoHandler := photoHttp.NewHandler(svc.Photos, svc.Items)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, limit)
		itemHttp.RegisterRoutes(v1, itemHandler, authMiddleware, limit)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, limit)
		itemrequestHttp.RegisterRoutes(v1, requestHandler, authMiddleware, limit)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware, limit)
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
