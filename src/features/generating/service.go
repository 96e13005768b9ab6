package generating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tunesmith/src/features/metrics"
)

// ErrEmptyResult means the generator answered but suggested no tracks.
var ErrEmptyResult = errors.New("generated playlist has no tracks")

// Generator produces a playlist suggestion from a free-text prompt.
type Generator interface {
	GeneratePlaylist(ctx context.Context, prompt string) (GeneratedPlaylist, error)
}

// Service is the domain service for the generating feature.
type Service struct {
	generator Generator
}

// NewService creates a new generating service.
func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

// GeneratePlaylist turns a prompt into a playlist suggestion. Upstream
// failures are surfaced to the caller; an answer with zero tracks is
// ErrEmptyResult.
func (s *Service) GeneratePlaylist(ctx context.Context, prompt string) (GeneratedPlaylist, error) {
	prompt = strings.TrimSpace(prompt)
	slog.Info("Generating playlist", "prompt_len", len(prompt))

	playlist, err := s.generator.GeneratePlaylist(ctx, prompt)
	if err != nil {
		slog.Error("Playlist generation failed", "error", err)
		return GeneratedPlaylist{}, fmt.Errorf("generator upstream error: %w", err)
	}
	if len(playlist.Tracks) == 0 {
		slog.Warn("Generator returned no tracks")
		return GeneratedPlaylist{}, ErrEmptyResult
	}

	metrics.PromptsProcessed.Inc()
	slog.Info("Generated playlist", "tracks", len(playlist.Tracks), "name", playlist.PlaylistName)
	return playlist, nil
}
