package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/pkg/password"
	"github.com/fastygo/progress/pkg/token"
	"github.com/fastygo/progress/repository"
	"github.com/fastygo/progress/repository/memory"
)

func newUseCase(t *testing.T) (*UseCase, repository.UserRepository, repository.SessionRepository) {
	t.Helper()
	store := memory.NewStore()
	sessions := memory.NewSessionRepository(time.Hour)
	uc := New(store.Users(), sessions, password.NewBcrypt(bcrypt.MinCost), token.NewIssuer("secret", "test"), time.Hour, nil)
	return uc, store.Users(), sessions
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)

	user, err := uc.SignUp(ctx, "  alice ", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "pw1", user.PasswordHash)

	_, err = uc.SignUp(ctx, "", "pw")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	_, err = uc.SignUp(ctx, "bob", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSignUpDuplicateKeepsExistingHash(t *testing.T) {
	ctx := context.Background()
	uc, users, _ := newUseCase(t)

	_, err := uc.SignUp(ctx, "alice", "original")
	require.NoError(t, err)
	before, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	_, err = uc.SignUp(ctx, "alice", "replacement")
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)

	after, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = uc.Login(ctx, "alice", "original")
	assert.NoError(t, err)
	_, err = uc.Login(ctx, "alice", "replacement")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignUpRejectsOverlongPassword(t *testing.T) {
	ctx := context.Background()
	uc, users, _ := newUseCase(t)

	_, err := uc.SignUp(ctx, "alice", strings.Repeat("x", password.MaxBytes+8))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	_, err = users.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.SignUp(ctx, "alice", strings.Repeat("x", password.MaxBytes))
	assert.NoError(t, err)
}

type failingUsers struct{ repository.UserRepository }

func (failingUsers) Create(context.Context, *domain.User) (int64, error) {
	return 0, domain.StoreError("create user", errors.New("disk full"))
}

func TestSignUpSurfacesStoreFailure(t *testing.T) {
	uc := New(failingUsers{}, memory.NewSessionRepository(time.Hour), password.NewBcrypt(bcrypt.MinCost), nil, time.Hour, nil)

	_, err := uc.SignUp(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateUser)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))
}

func TestLoginIsGeneric(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newUseCase(t)
	_, err := uc.SignUp(ctx, "alice", "pw")
	require.NoError(t, err)

	_, unknown := uc.Login(ctx, "mallory", "pw")
	_, wrong := uc.Login(ctx, "alice", "nope")
	assert.ErrorIs(t, unknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, wrong, domain.ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestLoginAcceptsLegacyDigest(t *testing.T) {
	ctx := context.Background()
	uc, users, _ := newUseCase(t)
	_, err := users.Create(ctx, &domain.User{Username: "old-timer", PasswordHash: password.LegacyDigest("pw")})
	require.NoError(t, err)

	res, err := uc.Login(ctx, "old-timer", "pw")
	require.NoError(t, err)
	assert.Equal(t, "old-timer", res.Session.Username)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	uc, _, sessions := newUseCase(t)
	_, err := uc.SignUp(ctx, "alice", "pw")
	require.NoError(t, err)

	res, err := uc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	session, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)

	shortened, err := uc.RefreshSession(ctx, session.ID, 30*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), shortened.Session.ExpiresAt, time.Minute)

	// Requests beyond the configured lifetime are capped to it.
	refreshed, err := uc.RefreshSession(ctx, session.ID, 200*365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, session.ID, refreshed.Session.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), refreshed.Session.ExpiresAt, time.Minute)

	require.NoError(t, uc.Logout(ctx, session.ID))
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = sessions.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetSessionDropsExpired(t *testing.T) {
	ctx := context.Background()
	uc, _, sessions := newUseCase(t)

	past := time.Now().Add(-time.Hour)
	// ExpiresAt after CreatedAt keeps Save from resetting it.
	require.NoError(t, sessions.Save(ctx, &domain.Session{ID: "s", Username: "alice", CreatedAt: past, ExpiresAt: past.Add(time.Second)}))

	_, err := uc.GetSession(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
