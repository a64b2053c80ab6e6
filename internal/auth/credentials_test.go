package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Str0ng!Passw0rd12")
	require.NoError(t, err)

	assert.NotEqual(t, "Str0ng!Passw0rd12", hash)
	assert.True(t, CheckPassword("Str0ng!Passw0rd12", hash))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.False(t, CheckPassword("wrong horse battery staple", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same password", first))
	assert.True(t, CheckPassword("same password", second))
}
