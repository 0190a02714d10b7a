package banner

import "github.com/Chekke24/challenger-premios-backend/internal/pkg/apperror"

const (
	msgCreated  = "Banner subido correctamente"
	msgDeleted  = "Banner eliminado correctamente"
	msgRequired = "La imagen es obligatoria"
)

var (
	ErrBannerNotFound = apperror.NotFound("Banner no encontrado")
	ErrInvalidID      = apperror.Validation("Identificador de banner inválido", map[string]string{"id": "numeric"})
)
