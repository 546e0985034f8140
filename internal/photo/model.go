package photo

import (
	"time"

	"github.com/mlukashov/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(apperror.KindNotFound, "photo not found")
	ErrNotImage    = apperror.New(apperror.KindInvalidArgument, "uploaded file is not an image")
	ErrTooLarge    = apperror.New(apperror.KindInvalidArgument, "uploaded file is too large")
	ErrNoThumbnail = apperror.New(apperror.KindNotFound, "thumbnail not available")
)

// Photo is an image attached to an item. Originals are re-encoded to JPEG on
// upload, so ContentType is always image/jpeg.
type Photo struct {
	ID            string
	OwnerID       string
	Filename      string
	ContentType   string
	Size          int64
	StoragePath   string
	ThumbnailPath string
	CreatedAt     time.Time
}

// URL returns the public path for the full-size photo.
func URL(id string) string {
	return "/photos/" + id
}

// ThumbnailURL returns the public path for the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/photos/" + id + "/thumbnail"
}
