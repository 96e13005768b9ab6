package statistics

import (
	"context"
	"log/slog"
)

// Service serves listening statistics. The current provider is a fixture;
// a real aggregation backend can replace it behind the same methods.
type Service struct{}

// NewService creates a new statistics service.
func NewService() *Service {
	return &Service{}
}

// GetUserStatistics returns the listening statistics for a user.
func (s *Service) GetUserStatistics(ctx context.Context, userID string) (UserStatistics, error) {
	slog.Debug("GetUserStatistics service called", "userID", userID)

	return UserStatistics{
		TotalListeningTime: 1234,
		FavoriteGenres: []GenreStats{
			{Genre: "Rock", Percentage: 35.5},
			{Genre: "Pop", Percentage: 25.0},
		},
		FavoriteArtists: []ArtistStats{
			{ArtistName: "The Beatles", ListenCount: 50},
			{ArtistName: "Queen", ListenCount: 45},
		},
		ListeningHistory: []ListeningRecord{
			{TrackName: "Yesterday", ArtistName: "The Beatles", ListenedAt: "2024-03-20T10:30:00Z", Duration: 180},
		},
		DailyStats: []DailyStats{
			{Date: "2024-03-20", TotalMinutes: 120},
			{Date: "2024-03-19", TotalMinutes: 90},
		},
	}, nil
}

// GetListeningHistory returns the recorded play events.
func (s *Service) GetListeningHistory(ctx context.Context) ([]ListeningRecord, error) {
	stats, err := s.GetUserStatistics(ctx, "dummy")
	if err != nil {
		return nil, err
	}
	return stats.ListeningHistory, nil
}

// GetDailyStats returns per-day listening totals.
func (s *Service) GetDailyStats(ctx context.Context) ([]DailyStats, error) {
	stats, err := s.GetUserStatistics(ctx, "dummy")
	if err != nil {
		return nil, err
	}
	return stats.DailyStats, nil
}
