package app

import (
	"database/sql"
	"time"

	"github.com/RonikAgarwal/Swasthi/internal/attendance"
	"github.com/RonikAgarwal/Swasthi/internal/biometric"
	"github.com/RonikAgarwal/Swasthi/internal/healthcard"
	"github.com/RonikAgarwal/Swasthi/internal/messaging/kafka"
	"github.com/RonikAgarwal/Swasthi/internal/middleware"
	"github.com/RonikAgarwal/Swasthi/internal/roster"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	cardRepo := healthcard.NewRepository(gormDB)
	rosterRepo := roster.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	capturer := biometric.NewSimulatedCapturer(3 * time.Second)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo)
	cardService := healthcard.NewServiceWithOutbox(db, cardRepo, outboxRepo, rdb, capturer)
	rosterService := roster.NewService(db, rosterRepo, attendanceRepo, cardRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	cardHandler := healthcard.NewHandlerWithRedis(cardService, rdb)
	rosterHandler := roster.NewHandler(rosterService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	api.Use(middleware.SessionContext())
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		healthcard.RegisterRoutes(api, cardHandler, rdb)
		healthcard.RegisterPublicRoutes(api, cardHandler)
		roster.RegisterRoutes(api, rosterHandler)
	}

	return nil
}
