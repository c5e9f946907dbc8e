package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hashed, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)
	assert.NoError(t, ComparePassword(hashed, "secret1"))
}

func TestComparePasswordRejectsWrongPassword(t *testing.T) {
	hashed, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Error(t, ComparePassword(hashed, "secret2"))
}
