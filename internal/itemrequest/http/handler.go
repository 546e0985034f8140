package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mlukashov/item-sharing-backend/internal/auth"
	"github.com/mlukashov/item-sharing-backend/internal/itemrequest"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/request"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(r))
}

func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListOwn(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]RequestResponse, len(details))
	for i, d := range details {
		out[i] = NewRequestDetailResponse(d)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListAll(c *gin.Context) {
	var params request.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	details, total, err := h.service.ListAll(c.Request.Context(), auth.GetUserID(c), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]RequestResponse, len(details))
	for i, d := range details {
		out[i] = NewRequestDetailResponse(d)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(out, params.From, params.Size, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRequestDetailResponse(d))
}
