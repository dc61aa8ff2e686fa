package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "motdepasse123")

	ok, err := VerifyPassword("motdepasse123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais-mot-de-passe", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUsesRandomSalt(t *testing.T) {
	first, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	second, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "pas-un-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$a$b")
	assert.Error(t, err)
}
