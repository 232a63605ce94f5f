package healthcard

import (
	"github.com/RonikAgarwal/Swasthi/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	cards := r.Group("/health-cards")
	{
		cards.GET("", h.GetAll)
		cards.GET("/:employeeId", h.GetByEmployeeID)
		cards.PATCH("/:employeeId", h.Update)
		cards.POST("/:employeeId/submit", middleware.Idempotency(rdb), h.Submit)
		cards.POST("/:employeeId/biometrics", h.BeginCapture)
		cards.GET("/:employeeId/biometrics", h.CaptureStatus)
		cards.DELETE("/:employeeId/biometrics", h.CancelCapture)
	}
}

// RegisterPublicRoutes exposes the read-only card viewer without a session.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	public := r.Group("/public")
	{
		public.GET("/cards/:cardId", h.GetByCardID)
	}
}
