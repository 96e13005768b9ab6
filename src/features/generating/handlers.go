package generating

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the generating feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new generating handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ProcessPrompt invokes the idea generator for a prompt.
func (h *Handler) ProcessPrompt(c *fiber.Ctx) error {
	var req PromptRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error("Failed to parse prompt request", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please provide a prompt for the playlist",
		})
	}

	playlist, err := h.service.GeneratePlaylist(c.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No tracks were generated. Please try a different prompt.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate playlist. Please try again.",
		})
	}

	return c.JSON(playlist)
}
