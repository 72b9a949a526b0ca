package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompareHash(t *testing.T) {
	hash, err := GetHash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CompareHash(hash, "secret123"))
	assert.Error(t, CompareHash(hash, "wrongpass"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	hash1, err := GetHash("secret123")
	require.NoError(t, err)
	hash2, err := GetHash("secret123")
	require.NoError(t, err)

	// bcrypt генерирует соль на каждый вызов
	assert.NotEqual(t, hash1, hash2)
	assert.NoError(t, CompareHash(hash1, "secret123"))
	assert.NoError(t, CompareHash(hash2, "secret123"))
}
