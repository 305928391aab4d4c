package settlement

import (
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/tillpointhq/tillpoint-backend/pkg/errors"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "settlement session not found")

// Registry owns the open settlement sessions of a terminal process. Sessions
// are deliberately not persisted: a discarded checkout leaves no trace, and a
// crashed process simply starts the checkout over.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

// NewRegistry builds a registry that drops sessions older than ttl. A zero
// ttl disables expiry.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
}

// Put stores the session, pruning expired entries on the way in.
func (r *Registry) Put(session *Session) {
	if session == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked(time.Now().UTC())
	r.sessions[session.ID] = session
}

// Get returns the session for the id or ErrSessionNotFound.
func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if r.expired(session, time.Now().UTC()) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove forgets the session. Removing an unknown id is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of tracked sessions, expired ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) expired(session *Session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(session.CreatedAt) > r.ttl
}

func (r *Registry) pruneLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, session := range r.sessions {
		if r.expired(session, now) {
			delete(r.sessions, id)
		}
	}
}
