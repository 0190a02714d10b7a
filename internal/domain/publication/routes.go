package publication

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	publicaciones := r.Group("/publicaciones")
	{
		publicaciones.GET("", h.List)
		publicaciones.POST("", h.Create)
		publicaciones.DELETE("/:id", h.Delete)
	}
}
