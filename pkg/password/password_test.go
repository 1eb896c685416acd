package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, h.Verify(hash, "hunter2"))
	assert.ErrorIs(t, h.Verify(hash, "hunter3"), ErrMismatch)
}

func TestLegacyDigest(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	digest := LegacyDigest("secret")

	assert.Len(t, digest, 64)
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", digest)
	assert.NoError(t, h.Verify(digest, "secret"))
	assert.ErrorIs(t, h.Verify(digest, "Secret"), ErrMismatch)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", MaxBytes+1))
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = h.Hash(strings.Repeat("a", MaxBytes))
	assert.NoError(t, err)
}
