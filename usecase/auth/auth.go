package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/pkg/password"
	"github.com/fastygo/progress/pkg/token"
	"github.com/fastygo/progress/repository"
)

// Result is what a successful login or refresh hands back to the caller.
type Result struct {
	Token   string          `json:"token,omitempty"`
	Session *domain.Session `json:"session"`
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   password.Hasher
	tokens   *token.Issuer
	ttl      time.Duration
	logger   *zap.Logger
}

// New wires the auth use case. tokens may be nil for clients that hold the
// session id directly.
func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher password.Hasher,
	tokens *token.Issuer,
	ttl time.Duration,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = password.NewBcrypt(0)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		ttl:      ttl,
		logger:   logger,
	}
}

// SignUp creates an account. A taken username yields domain.ErrDuplicateUser
// and leaves the existing account untouched.
func (uc *UseCase) SignUp(ctx context.Context, username, plain string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Invalid("username is required")
	}
	if plain == "" {
		return nil, domain.Invalid("password is required")
	}
	if len(plain) > password.MaxBytes {
		return nil, domain.Invalid("password must be at most %d bytes", password.MaxBytes)
	}

	hash, err := uc.hasher.Hash(plain)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, domain.Invalid("password must be at most %d bytes", password.MaxBytes)
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "hash password", err)
	}

	user := &domain.User{Username: username, PasswordHash: hash}
	if _, err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			uc.logger.Info("sign-up rejected: username taken", zap.String("username", username))
			return nil, err
		}
		uc.logger.Error("sign-up failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("account created", zap.String("username", username))
	return user, nil
}

// Login verifies credentials and opens a session. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, username, plain string) (*Result, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := uc.hasher.Verify(user.PasswordHash, plain); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			uc.logger.Warn("password verification error", zap.String("username", username), zap.Error(err))
		}
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return uc.result(session)
}

// Authenticate resolves a bearer token to its live session.
func (uc *UseCase) Authenticate(ctx context.Context, raw string) (*domain.Session, error) {
	if uc.tokens == nil {
		return nil, domain.ErrUnauthorized
	}
	claims, err := uc.tokens.Parse(raw)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	session, err := uc.GetSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if session.Username != claims.Username {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends a live session and issues a fresh token for it.
// The extension is capped at the configured session lifetime.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*Result, error) {
	if ttl <= 0 || ttl > uc.ttl {
		ttl = uc.ttl
	}
	session, err := uc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return uc.result(session)
}

// Logout revokes the session so its token stops resolving.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) result(session *domain.Session) (*Result, error) {
	res := &Result{Session: session}
	if uc.tokens == nil {
		return res, nil
	}
	signed, err := uc.tokens.Issue(session.ID, session.Username, session.ExpiresAt)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "sign token", err)
	}
	res.Token = signed
	return res, nil
}
