package statistics

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the statistics feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new statistics handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetUserStatistics returns the full statistics bundle for a user.
func (h *Handler) GetUserStatistics(c *fiber.Ctx) error {
	userID := c.Params("userId")

	stats, err := h.service.GetUserStatistics(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get user statistics", "userID", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load statistics",
		})
	}
	return c.JSON(stats)
}

// GetListeningHistory returns recorded play events.
func (h *Handler) GetListeningHistory(c *fiber.Ctx) error {
	history, err := h.service.GetListeningHistory(c.Context())
	if err != nil {
		slog.Error("Failed to get listening history", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load listening history",
		})
	}
	return c.JSON(history)
}

// GetDailyStats returns per-day listening totals.
func (h *Handler) GetDailyStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDailyStats(c.Context())
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load daily stats",
		})
	}
	return c.JSON(stats)
}
