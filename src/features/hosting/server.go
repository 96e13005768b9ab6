package hosting

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"
	"tunesmith/src/features/config"
	"tunesmith/src/features/generating"
	"tunesmith/src/features/metrics"
	"tunesmith/src/features/playlisting"
	"tunesmith/src/features/statistics"
	"tunesmith/src/infra/qr"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	addr string
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, generatingService *generating.Service, playlistingService *playlisting.Service, statisticsService *statistics.Service) *Server {
	engine := html.New("./views", ".html")
	engine.Debug(cfg.Get().Logger.Level == "debug")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
		AppName:               "Tunesmith",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	// The browser popup posts results back to the front-end origin, and the
	// front-end sends the session cookie with its requests.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Get().FrontendURL,
		AllowMethods:     "GET,POST",
		AllowHeaders:     "Content-Type, Authorization, Cookie, X-CSRF-Token, Accept, Origin",
		ExposeHeaders:    "Set-Cookie",
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{})
	})
	app.Get("/playlist-qr", func(c *fiber.Ctx) error {
		playlistURL := c.Query("url")
		if playlistURL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "url query parameter is required",
			})
		}
		png, err := qr.PlaylistPNG(playlistURL)
		if err != nil {
			slog.Error("Failed to render playlist QR code", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to render QR code",
			})
		}
		c.Set("Content-Type", "image/png")
		return c.Send(png)
	})

	generating.RegisterRoutes(app, generatingService)
	playlisting.RegisterRoutes(app, playlistingService)
	statistics.RegisterRoutes(app, statisticsService)
	config.RegisterRoutes(app, cfg)
	metrics.RegisterRoutes(app)

	addr := fmt.Sprintf("%s:%d", cfg.Get().Server.Host, cfg.Get().Server.Port)
	return &Server{app: app, addr: addr}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
