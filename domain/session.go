package domain

import "time"

// Session represents an authenticated interaction backing a bearer token.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session is no longer valid at reference.
// A session expiring exactly at reference is already expired.
func (s *Session) IsExpired(reference time.Time) bool {
	return s.Remaining(reference) <= 0
}

// Remaining is the lifetime left at reference, zero once expired.
func (s *Session) Remaining(reference time.Time) time.Duration {
	if s == nil {
		return 0
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	if left := s.ExpiresAt.Sub(reference); left > 0 {
		return left
	}
	return 0
}
