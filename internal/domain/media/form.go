package media

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Chekke24/challenger-premios-backend/internal/pkg/apperror"
)

// BindForm parses the multipart body with the engine's memory limit and maps
// it onto req. Other bodies bind as plain forms, so a missing file is left to
// validation.
func BindForm(c *gin.Context, req any) error {
	b := binding.FormMultipart
	if _, err := c.MultipartForm(); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return apperror.Validation("Formulario inválido: "+err.Error(), nil)
		}
		b = binding.Form
	}
	if err := c.ShouldBindWith(req, b); err != nil {
		return apperror.Validation("Formulario inválido: "+err.Error(), nil)
	}
	return nil
}
