package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authed ...gin.HandlerFunc) {
	requests := g.Group("/requests")
	requests.Use(authed...)
	{
		requests.POST("", h.Create)
		requests.GET("", h.ListOwn)
		requests.GET("/all", h.ListAll)
		requests.GET("/:id", h.Get)
	}
}
