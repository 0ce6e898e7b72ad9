package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/interfaces"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
)

type sessionEntry[T any] struct {
	mu      sync.Mutex
	session T
	seq     uint64
}

// SessionStore holds sessions in process memory. Each session has its own
// lock so work on one session never waits on another.
type SessionStore[T any] struct {
	mu      sync.RWMutex
	entries map[model.SessionID]*sessionEntry[T]
	seq     uint64
}

var _ interfaces.SessionStore[struct{}] = &SessionStore[struct{}]{}

// NewSessionStore creates an empty SessionStore
func NewSessionStore[T any]() *SessionStore[T] {
	return &SessionStore[T]{
		entries: make(map[model.SessionID]*sessionEntry[T]),
	}
}

// Create stores a session under a new ID
func (s *SessionStore[T]) Create(ctx context.Context, session T) (model.SessionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := model.NewSessionID()
	s.seq++
	s.entries[id] = &sessionEntry[T]{
		session: session,
		seq:     s.seq,
	}
	return id, nil
}

// With runs fn with exclusive access to the session
func (s *SessionStore[T]) With(ctx context.Context, id model.SessionID, fn func(T) error) error {
	s.mu.RLock()
	entry, exists := s.entries[id]
	s.mu.RUnlock()
	if !exists {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V(SessionIDKey, id))
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "context done before session access", goerr.V(SessionIDKey, id))
	}
	return fn(entry.session)
}

// Delete removes a session. In-flight With calls on it complete normally.
func (s *SessionStore[T]) Delete(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; !exists {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V(SessionIDKey, id))
	}
	delete(s.entries, id)
	return nil
}

// List returns session IDs in creation order
func (s *SessionStore[T]) List(ctx context.Context) ([]model.SessionID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type item struct {
		id  model.SessionID
		seq uint64
	}
	items := make([]item, 0, len(s.entries))
	for id, e := range s.entries {
		items = append(items, item{id: id, seq: e.seq})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].seq < items[j].seq
	})

	ids := make([]model.SessionID, len(items))
	for i, it := range items {
		ids[i] = it.id
	}
	return ids, nil
}
