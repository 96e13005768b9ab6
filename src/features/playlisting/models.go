package playlisting

// Track is one candidate song as produced by the idea generator.
type Track struct {
	Name      string `json:"name" validate:"required"`
	Artist    string `json:"artist" validate:"required"`
	URL       string `json:"url"`
	SpotifyID string `json:"spotify_id,omitempty"`
}

// PendingRequest is a playlist-creation request parked in the session store
// while the user completes the Spotify authorization round-trip.
type PendingRequest struct {
	Tracks              []Track `json:"tracks" validate:"dive"`
	PlaylistName        string  `json:"playlist_name" validate:"required"`
	PlaylistDescription string  `json:"playlist_description,omitempty"`
}

// ResolvedTrack pairs an input track with the Spotify track ID the catalog
// search settled on.
type ResolvedTrack struct {
	Track     Track
	SpotifyID string
}

// CreatedPlaylist identifies a playlist created in the user's account.
type CreatedPlaylist struct {
	ID  string
	URL string
}

// RecentTrack is one listening-history entry reported by the history flow.
type RecentTrack struct {
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	AlbumImage string `json:"album_image,omitempty"`
	PlayedAt   string `json:"played_at"`
}

// CallbackRequest carries the raw inputs of one provider redirect.
type CallbackRequest struct {
	Code        string
	State       string
	ForHistory  bool
	CookieToken string
}

// CallbackResult is the typed outcome of one callback flow. The presentation
// layer decides how to deliver it (postMessage HTML, JSON, redirect).
type CallbackResult struct {
	Flow        Flow
	PlaylistURL string
	Recent      []RecentTrack
	// ClearSessionCookie is set once the token exchange succeeded and the
	// cookie copy of the session token is no longer needed.
	ClearSessionCookie bool
	Err                *FlowError
}

// Flow discriminates the two callback flows sharing the redirect endpoint.
type Flow string

const (
	FlowPlaylist Flow = "playlist"
	FlowHistory  Flow = "history"
)

// callbackVariant is the tagged form of a redirect, decided once at entry.
type callbackVariant interface{ isCallback() }

type historyCallback struct{ code string }

type playlistCallback struct {
	code  string
	token string
}

type expiredCallback struct{}

func (historyCallback) isCallback()  {}
func (playlistCallback) isCallback() {}
func (expiredCallback) isCallback()  {}

// dispatch classifies a redirect. The history flag wins unconditionally;
// otherwise the correlation token comes from the state parameter, falling
// back to the session cookie.
func dispatch(cb CallbackRequest) callbackVariant {
	if cb.ForHistory {
		return historyCallback{code: cb.Code}
	}
	if cb.State != "" {
		return playlistCallback{code: cb.Code, token: cb.State}
	}
	if cb.CookieToken != "" {
		return playlistCallback{code: cb.Code, token: cb.CookieToken}
	}
	return expiredCallback{}
}
