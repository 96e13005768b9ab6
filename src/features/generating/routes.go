package generating

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the generating feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Post("/process-prompt", handler.ProcessPrompt)
}
