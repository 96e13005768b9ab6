package statistics

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the statistics feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	stats := app.Group("/statistics")
	stats.Get("/history", handler.GetListeningHistory)
	stats.Get("/daily", handler.GetDailyStats)
	stats.Get("/:userId", handler.GetUserStatistics)
}
