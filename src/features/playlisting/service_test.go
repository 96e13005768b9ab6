package playlisting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// MockStore is an in-memory SessionStore that records Take calls.
type MockStore struct {
	items     map[string]PendingRequest
	takeCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{items: make(map[string]PendingRequest)}
}

func (m *MockStore) Put(token string, req PendingRequest) {
	m.items[token] = req
}

func (m *MockStore) Take(token string) (PendingRequest, bool) {
	m.takeCalls++
	req, ok := m.items[token]
	if ok {
		delete(m.items, token)
	}
	return req, ok
}

func (m *MockStore) Size() int { return len(m.items) }

func (m *MockStore) Clear() { m.items = make(map[string]PendingRequest) }

// MockAuthenticator hands out a fixed session and records exchanges.
type MockAuthenticator struct {
	session       *MockSession
	exchangeErr   error
	exchanges     int
	exchangedFlow Flow
	exchangedCode string
}

func (m *MockAuthenticator) PlaylistAuthURL(state string) string {
	return "https://accounts.spotify.com/authorize?state=" + state
}

func (m *MockAuthenticator) HistoryAuthURL() string {
	return "https://accounts.spotify.com/authorize?history=1"
}

func (m *MockAuthenticator) Exchange(ctx context.Context, code string, flow Flow) (Session, error) {
	m.exchanges++
	m.exchangedCode = code
	m.exchangedFlow = flow
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return m.session, nil
}

// MockSession scripts the provider calls of one authenticated user.
type MockSession struct {
	userID  string
	userErr error

	// searchResults maps "name|artist" to a track ID; absent keys mean no match.
	searchResults map[string]string
	searchErrs    map[string]error
	searches      []string

	createdPlaylist CreatedPlaylist
	createErr       error
	createCalls     int
	createdName     string
	createdDesc     string

	addErr     error
	addBatches [][]string

	recent    []RecentTrack
	recentErr error
}

func NewMockSession() *MockSession {
	return &MockSession{
		userID:          "user-1",
		searchResults:   make(map[string]string),
		searchErrs:      make(map[string]error),
		createdPlaylist: CreatedPlaylist{ID: "pl-1", URL: "https://open.spotify.com/playlist/pl-1"},
	}
}

func (m *MockSession) CurrentUserID(ctx context.Context) (string, error) {
	return m.userID, m.userErr
}

func (m *MockSession) SearchTrack(ctx context.Context, name, artist string) (string, bool, error) {
	key := name + "|" + artist
	m.searches = append(m.searches, key)
	if err, ok := m.searchErrs[key]; ok {
		return "", false, err
	}
	id, ok := m.searchResults[key]
	return id, ok, nil
}

func (m *MockSession) CreatePlaylist(ctx context.Context, userID, name, description string) (CreatedPlaylist, error) {
	m.createCalls++
	m.createdName = name
	m.createdDesc = description
	if m.createErr != nil {
		return CreatedPlaylist{}, m.createErr
	}
	return m.createdPlaylist, nil
}

func (m *MockSession) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	batch := make([]string, len(trackIDs))
	copy(batch, trackIDs)
	m.addBatches = append(m.addBatches, batch)
	return m.addErr
}

func (m *MockSession) RecentlyPlayed(ctx context.Context, limit int) ([]RecentTrack, error) {
	return m.recent, m.recentErr
}

func newTestService() (*Service, *MockStore, *MockAuthenticator, *MockSession) {
	store := NewMockStore()
	sess := NewMockSession()
	auth := &MockAuthenticator{session: sess}
	return NewService(store, auth), store, auth, sess
}

func matchableTracks(sess *MockSession, n int) []Track {
	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = Track{Name: fmt.Sprintf("Song %d", i), Artist: "Artist"}
		sess.searchResults[tracks[i].Name+"|Artist"] = fmt.Sprintf("id-%d", i)
	}
	return tracks
}

func TestRegisterRequest_DistinctTokensForIdenticalSubmissions(t *testing.T) {
	svc, store, _, _ := newTestService()
	req := PendingRequest{
		PlaylistName: "Same",
		Tracks:       []Track{{Name: "A", Artist: "B"}},
	}

	tok1, url1 := svc.RegisterRequest(req)
	tok2, url2 := svc.RegisterRequest(req)

	if tok1 == tok2 {
		t.Error("expected distinct tokens for identical submissions")
	}
	if !strings.Contains(url1, tok1) || !strings.Contains(url2, tok2) {
		t.Error("expected each auth URL to embed its own token as state")
	}
	if store.Size() != 2 {
		t.Errorf("expected both requests parked, got size %d", store.Size())
	}
}

func TestHandleCallback_PlaylistHappyPath(t *testing.T) {
	svc, store, auth, sess := newTestService()
	tracks := matchableTracks(sess, 3)
	token, _ := svc.RegisterRequest(PendingRequest{
		PlaylistName:        "Road Trip",
		PlaylistDescription: "for the drive",
		Tracks:              tracks,
	})

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})

	if res.Err != nil {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Flow != FlowPlaylist {
		t.Errorf("expected playlist flow, got %s", res.Flow)
	}
	if res.PlaylistURL != sess.createdPlaylist.URL {
		t.Errorf("expected playlist URL %q, got %q", sess.createdPlaylist.URL, res.PlaylistURL)
	}
	if !res.ClearSessionCookie {
		t.Error("expected cookie clear after successful exchange")
	}
	if auth.exchanges != 1 || auth.exchangedFlow != FlowPlaylist {
		t.Errorf("expected one playlist-flow exchange, got %d (%s)", auth.exchanges, auth.exchangedFlow)
	}
	if sess.createdName != "Road Trip" || sess.createdDesc != "for the drive" {
		t.Errorf("playlist created with wrong name/description: %q / %q", sess.createdName, sess.createdDesc)
	}
	if store.Size() != 0 {
		t.Error("expected pending request consumed")
	}
}

func TestHandleCallback_ReplayFailsWithoutExchange(t *testing.T) {
	svc, _, auth, sess := newTestService()
	tracks := matchableTracks(sess, 1)
	token, _ := svc.RegisterRequest(PendingRequest{PlaylistName: "Once", Tracks: tracks})

	first := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})
	if first.Err != nil {
		t.Fatalf("expected first callback to succeed, got %v", first.Err)
	}

	second := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})
	if second.Err == nil || second.Err.Kind != ErrNoPendingRequest {
		t.Fatalf("expected NoPendingRequest on replay, got %v", second.Err)
	}
	if auth.exchanges != 1 {
		t.Errorf("expected replay to fail before the exchange, got %d exchanges", auth.exchanges)
	}
}

func TestHandleCallback_EmptyTrackListFailsBeforeExchange(t *testing.T) {
	svc, _, auth, _ := newTestService()
	token, _ := svc.RegisterRequest(PendingRequest{PlaylistName: "Empty"})

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})

	if res.Err == nil || res.Err.Kind != ErrEmptyTrackList {
		t.Fatalf("expected EmptyTrackList, got %v", res.Err)
	}
	if auth.exchanges != 0 {
		t.Error("expected no exchange for an empty track list")
	}
}

func TestHandleCallback_MissingTokenEverywhere(t *testing.T) {
	svc, _, auth, _ := newTestService()

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1"})

	if res.Err == nil || res.Err.Kind != ErrSessionExpired {
		t.Fatalf("expected SessionExpired, got %v", res.Err)
	}
	if auth.exchanges != 0 {
		t.Error("expected no exchange without a token")
	}
}

func TestHandleCallback_CookieFallbackWhenStateMissing(t *testing.T) {
	svc, _, _, sess := newTestService()
	tracks := matchableTracks(sess, 1)
	token, _ := svc.RegisterRequest(PendingRequest{PlaylistName: "Via Cookie", Tracks: tracks})

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", CookieToken: token})

	if res.Err != nil {
		t.Fatalf("expected cookie fallback to succeed, got %v", res.Err)
	}
	if res.PlaylistURL == "" {
		t.Error("expected a playlist URL")
	}
}

func TestHandleCallback_ExchangeFailure(t *testing.T) {
	svc, store, auth, sess := newTestService()
	tracks := matchableTracks(sess, 1)
	token, _ := svc.RegisterRequest(PendingRequest{PlaylistName: "Doomed", Tracks: tracks})
	auth.exchangeErr = errors.New("invalid_grant")

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})

	if res.Err == nil || res.Err.Kind != ErrAuthExchangeFailed {
		t.Fatalf("expected AuthExchangeFailed, got %v", res.Err)
	}
	// The request was consumed before the exchange and is gone for good.
	if store.Size() != 0 {
		t.Error("expected pending request consumed even though the exchange failed")
	}
}

func TestResolveTracks_DropsNonMatchesInOrder(t *testing.T) {
	svc, _, _, sess := newTestService()
	sess.searchResults["A|X"] = "id-a"
	sess.searchResults["C|X"] = "id-c"
	sess.searchErrs["D|X"] = errors.New("429")
	tracks := []Track{
		{Name: "A", Artist: "X"},
		{Name: "B", Artist: "X"}, // no match
		{Name: "C", Artist: "X"},
		{Name: "D", Artist: "X"}, // search error
	}

	resolved := svc.resolveTracks(context.Background(), sess, tracks)

	if len(sess.searches) != 4 {
		t.Errorf("expected one search per track, got %d", len(sess.searches))
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolved tracks, got %d", len(resolved))
	}
	if resolved[0].SpotifyID != "id-a" || resolved[1].SpotifyID != "id-c" {
		t.Errorf("expected order-preserving resolution, got %q then %q", resolved[0].SpotifyID, resolved[1].SpotifyID)
	}
}

func TestHandleCallback_NoMatchingTracksCreatesNoPlaylist(t *testing.T) {
	svc, _, _, sess := newTestService()
	token, _ := svc.RegisterRequest(PendingRequest{
		PlaylistName: "Ghost",
		Tracks:       []Track{{Name: "Unknown", Artist: "Nobody"}},
	})

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})

	if res.Err == nil || res.Err.Kind != ErrNoMatchingTracks {
		t.Fatalf("expected NoMatchingTracks, got %v", res.Err)
	}
	if sess.createCalls != 0 {
		t.Error("expected no playlist when nothing resolves")
	}
	if !res.ClearSessionCookie {
		t.Error("expected cookie clear since the exchange already happened")
	}
}

func TestMaterialize_ChunksInOrder(t *testing.T) {
	svc, _, _, sess := newTestService()
	token, _ := svc.RegisterRequest(PendingRequest{
		PlaylistName: "Big",
		Tracks:       matchableTracks(sess, 250),
	})

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})
	if res.Err != nil {
		t.Fatalf("expected success, got %v", res.Err)
	}

	if len(sess.addBatches) != 3 {
		t.Fatalf("expected 3 batches for 250 tracks, got %d", len(sess.addBatches))
	}
	wantSizes := []int{100, 100, 50}
	next := 0
	for i, batch := range sess.addBatches {
		if len(batch) != wantSizes[i] {
			t.Errorf("batch %d: expected %d tracks, got %d", i, wantSizes[i], len(batch))
		}
		for _, id := range batch {
			want := fmt.Sprintf("id-%d", next)
			if id != want {
				t.Fatalf("expected %s next, got %s", want, id)
			}
			next++
		}
	}
}

func TestHandleCallback_BatchAddFailureAborts(t *testing.T) {
	svc, _, _, sess := newTestService()
	token, _ := svc.RegisterRequest(PendingRequest{
		PlaylistName: "Partial",
		Tracks:       matchableTracks(sess, 5),
	})
	sess.addErr = errors.New("503")

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: token})

	if res.Err == nil || res.Err.Kind != ErrBatchAddFailed {
		t.Fatalf("expected BatchAddFailed, got %v", res.Err)
	}
	if sess.createCalls != 1 {
		t.Errorf("expected the playlist to exist despite the failed add, create calls: %d", sess.createCalls)
	}
}

func TestHandleCallback_ErrorKindMapping(t *testing.T) {
	t.Run("profile fetch", func(t *testing.T) {
		svc, _, _, sess := newTestService()
		token, _ := svc.RegisterRequest(PendingRequest{PlaylistName: "P", Tracks: matchableTracks(sess, 1)})
		sess.userErr = errors.New("401")

		res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "c", State: token})
		if res.Err == nil || res.Err.Kind != ErrProfileFetchFailed {
			t.Fatalf("expected ProfileFetchFailed, got %v", res.Err)
		}
	})

	t.Run("playlist create", func(t *testing.T) {
		svc, _, _, sess := newTestService()
		token, _ := svc.RegisterRequest(PendingRequest{PlaylistName: "P", Tracks: matchableTracks(sess, 1)})
		sess.createErr = errors.New("403")

		res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "c", State: token})
		if res.Err == nil || res.Err.Kind != ErrPlaylistCreateFailed {
			t.Fatalf("expected PlaylistCreateFailed, got %v", res.Err)
		}
	})
}

func TestHandleCallback_HistoryFlow(t *testing.T) {
	svc, store, auth, sess := newTestService()
	store.Put("leftover", PendingRequest{PlaylistName: "Unrelated"})
	sess.recent = []RecentTrack{
		{Name: "Yesterday", Artist: "The Beatles", PlayedAt: "2026-08-30T10:00:00Z"},
	}

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", State: "ignored", ForHistory: true})

	if res.Err != nil {
		t.Fatalf("expected history flow to succeed, got %v", res.Err)
	}
	if res.Flow != FlowHistory {
		t.Errorf("expected history flow, got %s", res.Flow)
	}
	if len(res.Recent) != 1 || res.Recent[0].Name != "Yesterday" {
		t.Errorf("unexpected recent tracks: %+v", res.Recent)
	}
	if auth.exchangedFlow != FlowHistory {
		t.Errorf("expected history-flow exchange, got %s", auth.exchangedFlow)
	}
	if store.takeCalls != 0 {
		t.Error("expected history flow to never touch the session store")
	}
}

func TestHandleCallback_HistoryFetchFailure(t *testing.T) {
	svc, _, _, sess := newTestService()
	sess.recentErr = errors.New("timeout")

	res := svc.HandleCallback(context.Background(), CallbackRequest{Code: "code-1", ForHistory: true})

	if res.Err == nil || res.Err.Kind != ErrProfileFetchFailed {
		t.Fatalf("expected ProfileFetchFailed, got %v", res.Err)
	}
	if res.Flow != FlowHistory {
		t.Errorf("expected history flow, got %s", res.Flow)
	}
}

func TestDispatch_HistoryFlagWins(t *testing.T) {
	v := dispatch(CallbackRequest{Code: "c", State: "tok", CookieToken: "tok", ForHistory: true})
	if _, ok := v.(historyCallback); !ok {
		t.Errorf("expected history variant, got %T", v)
	}
}

func TestDispatch_StateTakesPrecedenceOverCookie(t *testing.T) {
	v := dispatch(CallbackRequest{Code: "c", State: "from-state", CookieToken: "from-cookie"})
	pc, ok := v.(playlistCallback)
	if !ok {
		t.Fatalf("expected playlist variant, got %T", v)
	}
	if pc.token != "from-state" {
		t.Errorf("expected state token to win, got %q", pc.token)
	}
}
