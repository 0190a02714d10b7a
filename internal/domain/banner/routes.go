package banner

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	banners := r.Group("/banners")
	{
		banners.GET("", h.List)
		banners.POST("", h.Create)
		banners.DELETE("/:id", h.Delete)
	}
}
