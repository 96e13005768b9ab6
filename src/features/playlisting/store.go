package playlisting

// SessionStore correlates a session token with the playlist request that is
// waiting for its authorization callback.
//
// Put overwrites any existing entry for the token (last writer wins). Take
// retrieves and removes in a single atomic step: of two concurrent callbacks
// carrying the same token, exactly one observes the request. There is no
// expiry; abandoned entries live for the life of the process.
type SessionStore interface {
	Put(token string, req PendingRequest)
	Take(token string) (PendingRequest, bool)

	// Size and Clear are administrative only.
	Size() int
	Clear()
}
