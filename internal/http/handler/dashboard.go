package handler

import (
	"github.com/gofiber/fiber/v2"

	"sahaya/internal/service"
)

// GetDashboard returns the home page counters.
//
// @Summary  Dashboard counts
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} service.DashboardCounts
// @Router   /dashboard [get]
func GetDashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Counts())
	}
}
