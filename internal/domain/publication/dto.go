package publication

import "mime/multipart"

// CreateRequest is the multipart form of POST /publicaciones. Text fields are
// stored exactly as sent; whitespace-only values count as missing.
type CreateRequest struct {
	Title       string                `form:"titulo" validate:"required,notblank"`
	Description string                `form:"descripcion" validate:"required,notblank"`
	Category    string                `form:"categoria" validate:"required,notblank"`
	Image       *multipart.FileHeader `form:"imagen" validate:"required"`
}
