package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", string(hash))
	assert.True(t, CheckPassword("secret1", string(hash)))
	assert.False(t, CheckPassword("secret2", string(hash)))
}
