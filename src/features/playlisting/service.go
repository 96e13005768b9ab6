package playlisting

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"tunesmith/src/features/metrics"
)

// maxTracksPerAdd is Spotify's documented per-call limit for adding items to
// a playlist.
const maxTracksPerAdd = 100

// historyLimit is how many listening events the history flow reports.
const historyLimit = 20

// Service drives the playlist-creation and history flows: it parks requests
// in the session store, classifies incoming callbacks, exchanges codes,
// resolves tracks, and materializes playlists.
type Service struct {
	store SessionStore
	auth  Authenticator
}

// NewService creates a new playlisting service.
func NewService(store SessionStore, auth Authenticator) *Service {
	return &Service{
		store: store,
		auth:  auth,
	}
}

// RegisterRequest parks a playlist request under a fresh session token and
// returns the token together with the authorization URL that embeds it as the
// OAuth state parameter. The request is held until the callback consumes it;
// submissions with an empty track list are accepted here and rejected at
// callback time.
func (s *Service) RegisterRequest(req PendingRequest) (token, authURL string) {
	token = uuid.New().String()
	s.store.Put(token, req)
	metrics.PlaylistRequests.Inc()
	slog.Info("Registered playlist request", "token", token, "tracks", len(req.Tracks), "name", req.PlaylistName)
	return token, s.auth.PlaylistAuthURL(token)
}

// HistoryAuthURL returns the authorization URL for the listening-history flow.
func (s *Service) HistoryAuthURL() string {
	return s.auth.HistoryAuthURL()
}

// StoreSize reports how many requests are currently parked.
func (s *Service) StoreSize() int {
	return s.store.Size()
}

// HandleCallback resumes whichever flow a provider redirect belongs to. The
// flow runs to completion once entered; every failure is terminal and carried
// in the result rather than retried.
func (s *Service) HandleCallback(ctx context.Context, cb CallbackRequest) CallbackResult {
	switch v := dispatch(cb).(type) {
	case historyCallback:
		return s.runHistoryFlow(ctx, v.code)
	case playlistCallback:
		return s.runPlaylistFlow(ctx, v.code, v.token)
	default:
		slog.Error("Callback carried no session token in state or cookie")
		return s.fail(FlowPlaylist, flowErr(ErrSessionExpired, "Session expired. Please try again."))
	}
}

// runPlaylistFlow performs take -> exchange -> resolve -> materialize. The
// pending request is consumed before the exchange, so a replayed callback
// deterministically fails at the lookup and never reaches the provider.
func (s *Service) runPlaylistFlow(ctx context.Context, code, token string) CallbackResult {
	req, ok := s.store.Take(token)
	if !ok {
		slog.Error("No pending request for session token", "token", token)
		return s.fail(FlowPlaylist, flowErr(ErrNoPendingRequest, "No playlist data found. Please try again."))
	}
	if len(req.Tracks) == 0 {
		slog.Error("Pending request has no tracks", "token", token)
		return s.fail(FlowPlaylist, flowErr(ErrEmptyTrackList, "No tracks selected. Please select some songs before creating a playlist."))
	}

	sess, err := s.auth.Exchange(ctx, code, FlowPlaylist)
	if err != nil {
		slog.Error("Token exchange failed", "token", token, "error", err)
		return s.fail(FlowPlaylist, flowErr(ErrAuthExchangeFailed, "Failed to authenticate with Spotify: %v", err))
	}

	// The exchange consumed the code; the cookie copy of the token is stale
	// from here on whatever happens next.
	result := CallbackResult{Flow: FlowPlaylist, ClearSessionCookie: true}

	resolved := s.resolveTracks(ctx, sess, req.Tracks)
	if len(resolved) == 0 {
		result.Err = flowErr(ErrNoMatchingTracks, "Could not find any matching tracks on Spotify")
		metrics.CallbackFailures.WithLabelValues(string(result.Err.Kind)).Inc()
		return result
	}

	url, ferr := s.materialize(ctx, sess, req, resolved)
	if ferr != nil {
		result.Err = ferr
		metrics.CallbackFailures.WithLabelValues(string(ferr.Kind)).Inc()
		return result
	}

	slog.Info("Playlist created", "url", url, "tracks", len(resolved))
	metrics.PlaylistsCreated.Inc()
	result.PlaylistURL = url
	return result
}

// runHistoryFlow exchanges the code and reports recent listening events. It
// never touches the session store.
func (s *Service) runHistoryFlow(ctx context.Context, code string) CallbackResult {
	sess, err := s.auth.Exchange(ctx, code, FlowHistory)
	if err != nil {
		slog.Error("Token exchange failed for history flow", "error", err)
		return s.fail(FlowHistory, flowErr(ErrAuthExchangeFailed, "Failed to authenticate with Spotify. Please try again."))
	}

	recent, err := sess.RecentlyPlayed(ctx, historyLimit)
	if err != nil {
		slog.Error("Failed to fetch recently played", "error", err)
		return s.fail(FlowHistory, flowErr(ErrProfileFetchFailed, "Failed to load your recently played tracks. Please try again."))
	}

	metrics.HistoryLoads.Inc()
	return CallbackResult{Flow: FlowHistory, Recent: recent}
}

// resolveTracks maps each track to a Spotify ID with one catalog search per
// track, issued sequentially in request order. The first result is taken
// unconditionally; tracks without a match are dropped with a log line only.
func (s *Service) resolveTracks(ctx context.Context, sess Session, tracks []Track) []ResolvedTrack {
	resolved := make([]ResolvedTrack, 0, len(tracks))
	for _, t := range tracks {
		slog.Debug("Searching for track", "name", t.Name, "artist", t.Artist)
		id, ok, err := sess.SearchTrack(ctx, t.Name, t.Artist)
		if err != nil {
			slog.Warn("Track search failed, dropping track", "name", t.Name, "artist", t.Artist, "error", err)
			metrics.TracksDropped.Inc()
			continue
		}
		if !ok {
			slog.Info("No match for track, dropping", "name", t.Name, "artist", t.Artist)
			metrics.TracksDropped.Inc()
			continue
		}
		resolved = append(resolved, ResolvedTrack{Track: t, SpotifyID: id})
		metrics.TracksResolved.Inc()
	}
	return resolved
}

// materialize creates exactly one private, non-collaborative playlist and
// fills it in order-preserving batches. A failed batch aborts the rest;
// already-added batches stay in place.
func (s *Service) materialize(ctx context.Context, sess Session, req PendingRequest, resolved []ResolvedTrack) (string, *FlowError) {
	userID, err := sess.CurrentUserID(ctx)
	if err != nil {
		slog.Error("Failed to get user profile", "error", err)
		return "", flowErr(ErrProfileFetchFailed, "Failed to get user profile: %v", err)
	}

	playlist, err := sess.CreatePlaylist(ctx, userID, req.PlaylistName, req.PlaylistDescription)
	if err != nil {
		slog.Error("Failed to create playlist", "name", req.PlaylistName, "error", err)
		return "", flowErr(ErrPlaylistCreateFailed, "Failed to create playlist: %v", err)
	}

	ids := make([]string, len(resolved))
	for i, r := range resolved {
		ids[i] = r.SpotifyID
	}

	for start := 0; start < len(ids); start += maxTracksPerAdd {
		end := min(start+maxTracksPerAdd, len(ids))
		if err := sess.AddTracks(ctx, playlist.ID, ids[start:end]); err != nil {
			slog.Error("Failed to add tracks to playlist", "playlist", playlist.ID, "batch_start", start, "error", err)
			return "", flowErr(ErrBatchAddFailed, "Failed to add tracks to playlist: %v", err)
		}
	}

	return playlist.URL, nil
}

func (s *Service) fail(flow Flow, ferr *FlowError) CallbackResult {
	metrics.CallbackFailures.WithLabelValues(string(ferr.Kind)).Inc()
	return CallbackResult{Flow: flow, Err: ferr}
}
