package banner

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
// @Summary List banners
// @Tags Banners
// @Produce json
// @Success 200 {array} Banner
// @Router /banners [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Upload a banner image
// @Tags Banners
// @Accept multipart/form-data
// @Produce json
// @Param imagen formData file true "Image"
// @Success 201 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /banners [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := media.BindForm(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, http.StatusCreated, msgCreated, b.ID)
}

// Delete godoc
// @Summary Delete a banner and its image
// @Tags Banners
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /banners/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) && id > 0 {
		// too large for any stored id
		response.Error(c, ErrBannerNotFound)
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
