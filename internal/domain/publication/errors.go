package publication

import "github.com/Chekke24/challenger-premios-backend/internal/pkg/apperror"

const (
	msgCreated  = "Publicación subida correctamente"
	msgDeleted  = "Publicación eliminada correctamente"
	msgRequired = "Todos los campos son obligatorios"
)

var (
	ErrPublicationNotFound = apperror.NotFound("Publicación no encontrada")
	ErrInvalidID           = apperror.Validation("Identificador de publicación inválido", map[string]string{"id": "numeric"})
)
