package controllers

import (
	"handbook-backend/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// GET /api/health
func (ctl *HealthController) Health(c *fiber.Ctx) error {
	if err := database.Ping(ctl.DB); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unreachable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
