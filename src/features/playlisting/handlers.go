package playlisting

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// sessionCookie mirrors the session token into the browser so a redirect that
// lost its state parameter can still find its way back to the stored request.
const sessionCookie = "tracks_session_id"

// Handler handles HTTP requests for the playlisting feature.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new playlisting handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// CreatePlaylist registers a pending playlist request and hands back the
// authorization URL the browser should open. The track list may be empty
// here; the callback rejects it later.
func (h *Handler) CreatePlaylist(c *fiber.Ctx) error {
	var req PendingRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error("Failed to parse playlist request", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		slog.Error("Playlist request validation failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "playlist_name and per-track name/artist are required",
		})
	}

	token, authURL := h.service.RegisterRequest(req)

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	return c.JSON(fiber.Map{
		"auth_url":   authURL,
		"session_id": token,
	})
}

// Callback resumes either flow after the provider redirect. The outcome is
// rendered as a small HTML page that posts a structured message to the opener
// window and closes itself.
func (h *Handler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing authorization code",
		})
	}

	cb := CallbackRequest{
		Code:        code,
		State:       c.Query("state"),
		ForHistory:  c.QueryBool("for_history"),
		CookieToken: c.Cookies(sessionCookie),
	}
	slog.Info("Received callback", "for_history", cb.ForHistory, "has_state", cb.State != "")

	result := h.service.HandleCallback(c.Context(), cb)

	if result.ClearSessionCookie {
		c.ClearCookie(sessionCookie)
	}

	return h.renderResult(c, result)
}

// HistoryAuth returns an authorization URL scoped for history reads.
func (h *Handler) HistoryAuth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"auth_url": h.service.HistoryAuthURL(),
	})
}

// renderResult maps a CallbackResult onto the postMessage templates.
func (h *Handler) renderResult(c *fiber.Ctx, result CallbackResult) error {
	c.Set("Content-Type", "text/html; charset=utf-8")

	if result.Flow == FlowHistory {
		if result.Err != nil {
			return c.Render("callback/history_error", fiber.Map{
				"Message": result.Err.Message,
			})
		}
		tracksJSON, err := json.Marshal(result.Recent)
		if err != nil {
			slog.Error("Failed to marshal history tracks", "error", err)
			tracksJSON = []byte("[]")
		}
		// template.JS keeps the marshaled array from being re-escaped into a
		// string literal inside the script block.
		return c.Render("callback/history", fiber.Map{
			"TracksJSON": template.JS(tracksJSON),
		})
	}

	if result.Err != nil {
		return c.Render("callback/error", fiber.Map{
			"Message": result.Err.Message,
		})
	}
	return c.Render("callback/success", fiber.Map{
		"PlaylistURL": result.PlaylistURL,
	})
}
