package sessions

import (
	"sync"

	"tunesmith/src/features/playlisting"
)

// InMemoryStore is an in-memory implementation of the SessionStore interface.
// All state lives in process memory and is lost on restart; callbacks for
// requests parked before a restart land in NoPendingRequest.
type InMemoryStore struct {
	items sync.Map // map[string]playlisting.PendingRequest
}

// NewInMemoryStore creates a new in-memory session store.
func NewInMemoryStore() playlisting.SessionStore {
	return &InMemoryStore{}
}

// Put inserts a request under the token, overwriting any existing entry.
func (s *InMemoryStore) Put(token string, req playlisting.PendingRequest) {
	s.items.Store(token, req)
}

// Take retrieves and removes the request for the token in one atomic step,
// so a duplicated callback cannot observe a request another callback is
// already consuming.
func (s *InMemoryStore) Take(token string) (playlisting.PendingRequest, bool) {
	value, ok := s.items.LoadAndDelete(token)
	if !ok {
		return playlisting.PendingRequest{}, false
	}
	req, ok := value.(playlisting.PendingRequest)
	return req, ok
}

// Size returns the number of parked requests.
func (s *InMemoryStore) Size() int {
	count := 0
	s.items.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}

// Clear removes all parked requests.
func (s *InMemoryStore) Clear() {
	s.items.Range(func(key, value any) bool {
		s.items.Delete(key)
		return true
	})
}
