package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
)

// EditSessions hands out short-lived tokens that stand in for a record on
// the update form, so the record's fields (the secret included) never travel
// in a URL. A token is valid until its TTL elapses or End is called.
type EditSessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]editSession
}

type editSession struct {
	entity    model.Entity
	expiresAt time.Time
}

// NewEditSessions creates an empty session table with the given TTL.
func NewEditSessions(ttl time.Duration) *EditSessions {
	return &EditSessions{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]editSession),
	}
}

// Begin stores a snapshot of entity and returns the token that refers to it.
// Expired sessions are swept on every call.
func (s *EditSessions) Begin(entity model.Entity) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	s.sessions[token] = editSession{entity: entity, expiresAt: now.Add(s.ttl)}

	return token
}

// Lookup returns the snapshot for token. Unknown, malformed and expired
// tokens report false; expired ones are removed.
func (s *EditSessions) Lookup(token string) (model.Entity, bool) {
	if uuid.Validate(token) != nil {
		return model.Entity{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return model.Entity{}, false
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, token)
		return model.Entity{}, false
	}
	return sess.entity, true
}

// End invalidates token.
func (s *EditSessions) End(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of live sessions, expired ones included until the
// next sweep.
func (s *EditSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *EditSessions) sweepLocked(now time.Time) {
	for token, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
