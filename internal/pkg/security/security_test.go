package security_test

import (
	"testing"

	"Pawtner/internal/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := security.HashPassword("s3cret-pa55")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pa55", hash)

	assert.True(t, security.CheckPassword("s3cret-pa55", hash))
	assert.False(t, security.CheckPassword("wrong", hash))
	assert.False(t, security.CheckPassword("s3cret-pa55", "not-a-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := security.GenerateToken(42, []string{"USER", "EXPERT"})
	require.NoError(t, err)

	claims, err := security.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{"USER", "EXPERT"}, claims.Roles)

	_, err = security.ValidateToken(token + "tampered")
	assert.Error(t, err)
	_, err = security.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := security.GenerateToken(1, []string{"USER"})
	require.NoError(t, err)

	sig, err := security.ExtractSignature(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	_, err = security.ExtractSignature("malformed")
	assert.Error(t, err)
}
