package publication

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Chekke24/challenger-premios-backend/internal/domain/media"
	"github.com/Chekke24/challenger-premios-backend/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List publications
// @Tags Publicaciones
// @Produce json
// @Success 200 {array} Publication
// @Failure 500 {object} map[string]interface{}
// @Router /publicaciones [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create a publication with its image
// @Tags Publicaciones
// @Accept multipart/form-data
// @Produce json
// @Param titulo formData string true "Title"
// @Param descripcion formData string true "Description"
// @Param categoria formData string true "Category"
// @Param imagen formData file true "Image"
// @Success 201 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /publicaciones [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := media.BindForm(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, http.StatusCreated, msgCreated, p.ID)
}

// Delete godoc
// @Summary Delete a publication and its image
// @Tags Publicaciones
// @Produce json
// @Param id path int true "Publication ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /publicaciones/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) && id > 0 {
		// too large for any stored id
		response.Error(c, ErrPublicationNotFound)
		return
	}
	if err != nil || id <= 0 {
		response.Error(c, ErrInvalidID)
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, msgDeleted)
}
