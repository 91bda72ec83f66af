package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate("secreto", "user-1", "manager", "dulceria-api", 5)
	require.NoError(t, err)

	uid, role, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.Equal(t, "manager", role)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate("secreto", "user-1", "admin", "dulceria-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate("secreto", "user-1", "admin", "dulceria-api", -1)
	require.NoError(t, err)

	_, _, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u", "admin", "x", 5)
	assert.ErrorIs(t, err, errEmptySecret)
	_, _, err = Parse("", "token")
	assert.ErrorIs(t, err, errEmptySecret)
}
