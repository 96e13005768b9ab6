package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"tunesmith/src/features/config"
	"tunesmith/src/features/playlisting"
)

// Client implements playlisting.Authenticator on top of the Spotify Web API.
// It carries one authenticator per flow because the two flows use different
// scope sets and redirect URIs, and a token exchange only succeeds against
// the exact redirect URI the code was issued for.
type Client struct {
	playlistAuth *spotifyauth.Authenticator
	historyAuth  *spotifyauth.Authenticator
}

// NewClient creates a Spotify client from the configured OAuth credentials.
func NewClient(cfg *config.Manager) *Client {
	sp := cfg.Get().Spotify
	return &Client{
		playlistAuth: spotifyauth.New(
			spotifyauth.WithRedirectURL(sp.RedirectURI),
			spotifyauth.WithScopes(
				spotifyauth.ScopePlaylistModifyPublic,
				spotifyauth.ScopePlaylistModifyPrivate,
				spotifyauth.ScopeUserReadPrivate,
				spotifyauth.ScopeUserReadEmail,
			),
			spotifyauth.WithClientID(sp.ClientID),
			spotifyauth.WithClientSecret(sp.ClientSecret),
		),
		historyAuth: spotifyauth.New(
			spotifyauth.WithRedirectURL(historyRedirectURI(sp.RedirectURI)),
			spotifyauth.WithScopes(
				spotifyauth.ScopeUserReadPrivate,
				spotifyauth.ScopeUserReadEmail,
				spotifyauth.ScopeUserReadRecentlyPlayed,
			),
			spotifyauth.WithClientID(sp.ClientID),
			spotifyauth.WithClientSecret(sp.ClientSecret),
		),
	}
}

// historyRedirectURI marks the shared callback endpoint for the history flow.
// This variant must be registered with the provider alongside the plain one.
func historyRedirectURI(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?for_history=true"
	}
	q := u.Query()
	q.Set("for_history", "true")
	u.RawQuery = q.Encode()
	return u.String()
}

// PlaylistAuthURL returns the playlist-flow authorization URL with the
// session token as the OAuth state parameter.
func (c *Client) PlaylistAuthURL(state string) string {
	return c.playlistAuth.AuthURL(state)
}

// HistoryAuthURL returns the history-flow authorization URL. The state value
// is throwaway; the history callback never correlates with stored requests.
func (c *Client) HistoryAuthURL() string {
	return c.historyAuth.AuthURL(uuid.New().String())
}

// Exchange trades the authorization code for a token and wraps the resulting
// authenticated API client. One attempt, no retry.
func (c *Client) Exchange(ctx context.Context, code string, flow playlisting.Flow) (playlisting.Session, error) {
	auth := c.playlistAuth
	if flow == playlisting.FlowHistory {
		auth = c.historyAuth
	}
	tok, err := auth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	return &session{client: spotify.New(auth.Client(ctx, tok))}, nil
}

// session is an authenticated Spotify API client for a single user.
type session struct {
	client *spotify.Client
}

func (s *session) CurrentUserID(ctx context.Context) (string, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// SearchTrack queries the catalog filtered by track name and artist and takes
// the first of at most one result.
func (s *session) SearchTrack(ctx context.Context, name, artist string) (string, bool, error) {
	query := fmt.Sprintf("track:%s artist:%s", name, artist)
	results, err := s.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return "", false, err
	}
	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return "", false, nil
	}
	return string(results.Tracks.Tracks[0].ID), true, nil
}

func (s *session) CreatePlaylist(ctx context.Context, userID, name, description string) (playlisting.CreatedPlaylist, error) {
	playlist, err := s.client.CreatePlaylistForUser(ctx, userID, name, description, false, false)
	if err != nil {
		return playlisting.CreatedPlaylist{}, err
	}
	link := playlist.ExternalURLs["spotify"]
	if link == "" {
		link = "https://open.spotify.com/playlist/" + string(playlist.ID)
	}
	return playlisting.CreatedPlaylist{ID: string(playlist.ID), URL: link}, nil
}

func (s *session) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	ids := make([]spotify.ID, len(trackIDs))
	for i, id := range trackIDs {
		ids[i] = spotify.ID(id)
	}
	_, err := s.client.AddTracksToPlaylist(ctx, spotify.ID(playlistID), ids...)
	return err
}

func (s *session) RecentlyPlayed(ctx context.Context, limit int) ([]playlisting.RecentTrack, error) {
	items, err := s.client.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{Limit: spotify.Numeric(limit)})
	if err != nil {
		return nil, err
	}

	recent := make([]playlisting.RecentTrack, 0, len(items))
	for _, item := range items {
		artists := make([]string, len(item.Track.Artists))
		for i, a := range item.Track.Artists {
			artists[i] = a.Name
		}
		var albumImage string
		if len(item.Track.Album.Images) > 0 {
			albumImage = item.Track.Album.Images[0].URL
		}
		recent = append(recent, playlisting.RecentTrack{
			Name:       item.Track.Name,
			Artist:     strings.Join(artists, ", "),
			AlbumImage: albumImage,
			PlayedAt:   item.PlayedAt.Format(time.RFC3339),
		})
	}
	return recent, nil
}
