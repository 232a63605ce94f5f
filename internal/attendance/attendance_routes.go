package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", h.GetAll)
		attendances.GET("/:employeeId", h.Get)
		attendances.PATCH("/:employeeId", h.UpdateField)
	}
}
