package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  *gorm.DB
}

// JSON reports service status plus dependency reachability.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{}
	status := "ok"

	dbStatus := "ok"
	if sqlDB, err := h.DB.DB(); err != nil {
		dbStatus = "down"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "down"
	}
	if dbStatus != "ok" {
		status = "degraded"
	}
	deps["database"] = dbStatus

	redisStatus := "ok"
	if h.Rdb == nil {
		redisStatus = "disabled"
	} else if err := h.Rdb.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
		status = "degraded"
	}
	deps["redis"] = redisStatus

	return c.JSON(fiber.Map{
		"service":      "isoko-api",
		"status":       status,
		"dependencies": deps,
	})
}
