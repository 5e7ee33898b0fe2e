package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	signed, err := GenerateJWT("counter-1", "s3cret", time.Hour, "mandi-ledger-app")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "counter-1", claims.Subject)
	assert.Equal(t, "mandi-ledger-app", claims.Issuer)
}

func TestGenerateJWT_RequiresSecret(t *testing.T) {
	_, err := GenerateJWT("counter-1", "", time.Hour, "x")
	assert.Error(t, err)
}
