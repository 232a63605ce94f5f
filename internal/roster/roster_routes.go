package roster

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	entries := r.Group("/roster")
	{
		entries.GET("", h.GetAll)
		entries.POST("", h.Create)
		entries.PUT("/:employeeId", h.Update)
		entries.DELETE("/:employeeId", h.Delete)
	}
}
