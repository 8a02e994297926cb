package handler

import (
	"vidquiz/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db    *sqlx.DB
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}
	code := fiber.StatusOK

	if h.db != nil {
		if err := h.db.PingContext(c.Context()); err != nil {
			status["database"] = "down"
			status["status"] = "degraded"
			code = fiber.StatusServiceUnavailable
		} else {
			status["database"] = "up"
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			status["cache"] = "down"
			if code == fiber.StatusOK {
				status["status"] = "degraded"
			}
		} else {
			status["cache"] = "up"
		}
	}

	return c.Status(code).JSON(status)
}
