package request

import "github.com/mlukashov/item-sharing-backend/internal/pkg/apperror"

// ErrBadPaging is returned when offset/size parameters are out of range.
var ErrBadPaging = apperror.New(apperror.KindInvalidArgument, "from must be >= 0 and size must be > 0")

// PageParams carries offset-based pagination parameters shared by list
// endpoints: from is a zero-based offset, size a positive page length.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Validate rejects negative offsets and non-positive page sizes.
func (p PageParams) Validate() error {
	if p.From < 0 || p.Size <= 0 {
		return ErrBadPaging
	}
	return nil
}
