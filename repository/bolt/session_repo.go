// Package bolt stores sessions in an embedded bbolt file for deployments
// without Redis.
package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/progress/domain"
)

var sessionsBucket = []byte("sessions")

// SessionStore wraps BoltDB to persist sessions across restarts.
type SessionStore struct {
	db  *bolt.DB
	ttl time.Duration
}

// Open initializes the BoltDB file and ensures the sessions bucket exists.
func Open(path string, ttl time.Duration) (*SessionStore, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db, ttl: ttl}, nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	var session *domain.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(sessionsBucket).Get([]byte(id))
		if raw == nil {
			return domain.ErrSessionNotFound
		}
		var decoded domain.Session
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return domain.StoreError("decode session", err)
		}
		session = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Purge runs on a schedule; until then expired entries read as missing.
	if session.IsExpired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.ExpiresAt.Before(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(s.ttl)
	}
	return s.put(session)
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete([]byte(id))
	})
}

func (s *SessionStore) Extend(ctx context.Context, id string, ttlSeconds int) error {
	duration := time.Duration(ttlSeconds) * time.Second
	if duration <= 0 {
		duration = s.ttl
	}
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	session.ExpiresAt = time.Now().Add(duration)
	return s.put(session)
}

// Purge removes sessions that expired before the reference time and reports
// how many were deleted.
func (s *SessionStore) Purge(reference time.Time) (int, error) {
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		var stale [][]byte
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var session domain.Session
			if err := json.Unmarshal(v, &session); err != nil || session.IsExpired(reference) {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

// Size returns the number of stored sessions.
func (s *SessionStore) Size() (int, error) {
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(sessionsBucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Ping reports whether the database file is still open.
func (s *SessionStore) Ping(context.Context) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(*bolt.Tx) error { return nil })
}

// Close closes the Bolt database.
func (s *SessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SessionStore) put(session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(session.ID), payload)
	})
}
