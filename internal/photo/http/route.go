package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authed ...gin.HandlerFunc) {
	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.Serve)
		photos.GET("/:id/thumbnail", h.ServeThumbnail)
	}

	items := g.Group("/items")
	items.Use(authed...)
	{
		items.POST("/:id/photo", h.UploadForItem)
	}
}
