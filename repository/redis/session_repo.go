package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type sessionRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed session repository. Expiry is
// delegated to Redis key TTLs.
func NewSessionRepository(client *redislib.Client, ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &sessionRepository{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	result, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.StoreError("get session", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, domain.StoreError("decode session", err)
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := session.Remaining(time.Now())
	if ttl <= 0 {
		// Already expired; a short-lived key keeps Save idempotent without
		// resurrecting the session for a full TTL.
		ttl = time.Second
	}

	if err := r.client.Set(ctx, r.key(session.ID), payload, ttl).Err(); err != nil {
		return domain.StoreError("save session", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return domain.StoreError("delete session", err)
	}
	return nil
}

func (r *sessionRepository) Extend(ctx context.Context, id string, ttlSeconds int) error {
	duration := time.Duration(ttlSeconds) * time.Second
	if duration <= 0 {
		duration = r.ttl
	}
	ok, err := r.client.Expire(ctx, r.key(id), duration).Result()
	if err != nil {
		return domain.StoreError("extend session", err)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Ping checks the Redis connection.
func (r *sessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *sessionRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
