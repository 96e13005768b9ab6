package statistics

// UserStatistics aggregates a user's listening behavior.
type UserStatistics struct {
	TotalListeningTime int               `json:"total_listening_time"`
	FavoriteGenres     []GenreStats      `json:"favorite_genres"`
	FavoriteArtists    []ArtistStats     `json:"favorite_artists"`
	ListeningHistory   []ListeningRecord `json:"listening_history"`
	DailyStats         []DailyStats      `json:"daily_stats"`
}

// GenreStats is the share of listening time spent on one genre.
type GenreStats struct {
	Genre      string  `json:"genre"`
	Percentage float32 `json:"percentage"`
}

// ArtistStats is the play count for one artist.
type ArtistStats struct {
	ArtistName  string `json:"artist_name"`
	ListenCount int    `json:"listen_count"`
}

// ListeningRecord is a single play event.
type ListeningRecord struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	ListenedAt string `json:"listened_at"`
	Duration   int    `json:"duration"`
}

// DailyStats is total listening minutes for one day.
type DailyStats struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"total_minutes"`
}
