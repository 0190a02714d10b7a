package banner

import "mime/multipart"

// CreateRequest is the multipart form of POST /banners.
type CreateRequest struct {
	Image *multipart.FileHeader `form:"imagen" validate:"required"`
}
