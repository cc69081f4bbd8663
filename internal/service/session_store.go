package service

import (
	"sync"
	"time"

	"github.com/guttosm/engraving-service/internal/metrics"
)

// sessionEntry tracks one stored session with its expiration.
type sessionEntry struct {
	session   *EditorSession
	expiresAt time.Time
}

// SessionStore is the in-memory registry of editor sessions. Sessions
// expire after an idle TTL (sliding: every Get extends the deadline); a
// background goroutine sweeps expired entries. Designs are never persisted
// server-side, so an expired session is simply gone.
type SessionStore struct {
	mu     sync.RWMutex
	ttl    time.Duration
	items  map[string]*sessionEntry
	stopCh chan struct{}
}

// NewSessionStore creates a session store with the given idle TTL and
// starts its cleanup loop.
func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		ttl:    ttl,
		items:  make(map[string]*sessionEntry),
		stopCh: make(chan struct{}),
	}
	go s.startCleanup()
	return s
}

// Get returns the session with the given id and extends its deadline.
func (s *SessionStore) Get(id string) (*EditorSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.items, id)
		metrics.UpdateActiveSessions(len(s.items))
		return nil, false
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	return entry.session, true
}

// Put stores or replaces a session.
func (s *SessionStore) Put(sess *EditorSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sess.ID] = &sessionEntry{
		session:   sess,
		expiresAt: time.Now().Add(s.ttl),
	}
	metrics.UpdateActiveSessions(len(s.items))
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	metrics.UpdateActiveSessions(len(s.items))
}

// Len returns the number of stored sessions, expired or not.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stop shuts down the cleanup loop.
func (s *SessionStore) Stop() {
	close(s.stopCh)
}

// startCleanup periodically removes expired sessions.
func (s *SessionStore) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup removes all expired sessions.
func (s *SessionStore) cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, id)
		}
	}
	metrics.UpdateActiveSessions(len(s.items))
}
