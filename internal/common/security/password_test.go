package security

import (
	"strings"
	"testing"

	"faculty_api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_SaltedAndVerifiable(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, p := range []string{"pw123", "", "correct horse battery staple", "pässwörd"} {
		first, err := h.Hash(p)
		require.NoError(t, err)
		second, err := h.Hash(p)
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "salt must differ per call")
		assert.NotEqual(t, p, first)
		assert.True(t, h.Verify(p, first))
		assert.True(t, h.Verify(p, second))
	}
}

func TestPasswordHasher_RejectsOtherPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw123")
	require.NoError(t, err)

	assert.False(t, h.Verify("pw124", hash))
	assert.False(t, h.Verify("", hash))
	assert.False(t, h.Verify("PW123", hash))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("pw123", ""))
	assert.False(t, h.Verify("pw123", "pw123"))
	assert.False(t, h.Verify("pw123", "$2a$10$short"))
}

func TestPasswordHasher_TooLong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).cost)

	h := NewPasswordHasher(5)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}
