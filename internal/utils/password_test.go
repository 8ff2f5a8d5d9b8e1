package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizflow/erp_backend/internal/utils"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	again, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salted hashes should differ per call")
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash("correct horse", hash))
	assert.False(t, utils.CheckPasswordHash("battery staple", hash))
	assert.False(t, utils.CheckPasswordHash("correct horse", "not-a-hash"))
}
