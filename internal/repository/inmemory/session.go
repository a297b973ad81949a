package inmemory

import (
	"context"
	"sync"
	"time"

	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/session"
)

// SessionStore is the single process-wide identity slot. A zero ttl keeps the
// identity until logout.
type SessionStore struct {
	mu        sync.RWMutex
	user      *directory.User
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now}
}

func (s *SessionStore) Load(ctx context.Context) (*directory.User, error) {
	now := s.now()

	s.mu.RLock()
	user, expiresAt := s.user, s.expiresAt
	s.mu.RUnlock()
	if user == nil {
		return nil, session.ErrNoSession
	}

	if !expiresAt.IsZero() && !expiresAt.After(now) {
		s.mu.Lock()
		if s.user != nil && !s.expiresAt.IsZero() && !s.expiresAt.After(now) {
			s.user = nil
		}
		s.mu.Unlock()
		return nil, session.ErrNoSession
	}

	value := cloneUser(*user)
	return &value, nil
}

func (s *SessionStore) Save(ctx context.Context, user directory.User) error {
	value := cloneUser(user)

	s.mu.Lock()
	s.user = &value
	s.expiresAt = time.Time{}
	if s.ttl > 0 {
		s.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.expiresAt = time.Time{}
	s.mu.Unlock()
	return nil
}
