package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type sessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]domain.Session
}

// NewSessionRepository returns a process-local session store.
func NewSessionRepository(ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &sessionRepository{ttl: ttl, sessions: make(map[string]domain.Session)}
}

func (r *sessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.IsExpired(time.Now()) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *sessionRepository) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) Extend(_ context.Context, id string, ttlSeconds int) error {
	duration := time.Duration(ttlSeconds) * time.Second
	if duration <= 0 {
		duration = r.ttl
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(duration)
	r.sessions[id] = session
	return nil
}
