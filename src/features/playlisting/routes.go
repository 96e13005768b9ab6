package playlisting

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the routes for the playlisting feature.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	app.Post("/create-spotify-playlist", handler.CreatePlaylist)
	app.Get("/callback", handler.Callback)
	app.Get("/history-auth", handler.HistoryAuth)
}
