package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mlukashov/item-sharing-backend/internal/auth"
	"github.com/mlukashov/item-sharing-backend/internal/item"
	"github.com/mlukashov/item-sharing-backend/internal/photo"
	"github.com/mlukashov/item-sharing-backend/internal/pkg/response"
)

// ItemAttacher links an uploaded photo to an item. Satisfied by the item
// service.
type ItemAttacher interface {
	AttachPhoto(ctx context.Context, itemID, actingUserID, photoID string) (*item.Item, error)
}

type Handler struct {
	photos photo.Service
	items  ItemAttacher
}

func NewHandler(photos photo.Service, items ItemAttacher) *Handler {
	return &Handler{photos: photos, items: items}
}

// UploadForItem accepts a multipart image in the "photo" field and attaches
// it to the item. A failed attach rolls the upload back.
func (h *Handler) UploadForItem(c *gin.Context) {
	itemID := c.Param("id")
	if _, err := uuid.Parse(itemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}

	userID := auth.GetUserID(c)
	p, err := h.photos.Upload(c.Request.Context(), header, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if _, err := h.items.AttachPhoto(c.Request.Context(), itemID, userID, p.ID); err != nil {
		_ = h.photos.Delete(c.Request.Context(), p.ID)
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, PhotoUploadResponse{
		PhotoID:      p.ID,
		URL:          photo.URL(p.ID),
		ThumbnailURL: photo.ThumbnailURL(p.ID),
	})
}

func (h *Handler) Serve(c *gin.Context) {
	h.serve(c, h.photos.Download)
}

func (h *Handler) ServeThumbnail(c *gin.Context) {
	h.serve(c, h.photos.DownloadThumbnail)
}

func (h *Handler) serve(c *gin.Context, download func(ctx context.Context, id string) (io.ReadCloser, *photo.Photo, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	stream, p, err := download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", `inline; filename="`+p.Filename+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing useful to send.
		return
	}
}
