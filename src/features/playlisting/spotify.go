package playlisting

import "context"

// Authenticator builds authorization URLs and performs the one-shot exchange
// of an authorization code for an authenticated session.
type Authenticator interface {
	// PlaylistAuthURL returns the authorization URL for the playlist flow,
	// embedding state as the OAuth state parameter.
	PlaylistAuthURL(state string) string

	// HistoryAuthURL returns the authorization URL for the read-only
	// listening-history flow. Its redirect carries for_history=true.
	HistoryAuthURL() string

	// Exchange trades an authorization code for an authenticated session.
	// The flow selects the scope set and redirect URI the code was issued
	// for; the redirect URI must match exactly or the provider rejects the
	// exchange. Provider rejections (expired code, reused code, redirect-URI
	// mismatch) are returned verbatim.
	Exchange(ctx context.Context, code string, flow Flow) (Session, error)
}

// Session is an authenticated Spotify client scoped to one user.
type Session interface {
	CurrentUserID(ctx context.Context) (string, error)

	// SearchTrack looks up one track by name and artist, requesting a single
	// result. ok is false when the catalog returned nothing.
	SearchTrack(ctx context.Context, name, artist string) (id string, ok bool, err error)

	CreatePlaylist(ctx context.Context, userID, name, description string) (CreatedPlaylist, error)

	// AddTracks issues one add-items call. Callers keep each batch within the
	// provider's per-call limit.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error

	RecentlyPlayed(ctx context.Context, limit int) ([]RecentTrack, error)
}
