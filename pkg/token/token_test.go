package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("secret", "tracker")

	raw, err := issuer.Issue("sess-1", "alice", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseRejects(t *testing.T) {
	issuer := NewIssuer("secret", "tracker")

	expired, err := issuer.Issue("sess-1", "alice", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalid)

	foreign, err := NewIssuer("other", "tracker").Issue("sess-1", "alice", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalid)

	wrongIssuer, err := NewIssuer("secret", "someone-else").Issue("sess-1", "alice", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = issuer.Parse(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)
}
