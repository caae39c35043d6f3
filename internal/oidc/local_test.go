package oidc

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, secret, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestLocalVerifierValidToken(t *testing.T) {
	v := NewLocalVerifier("shared-secret")
	raw := mintToken(t, "shared-secret", "user-1")

	token, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)

	var claims struct {
		Sub string `json:"sub"`
	}
	require.NoError(t, token.Claims(&claims))
	require.Equal(t, "user-1", claims.Sub)
}

func TestLocalVerifierWrongSecret(t *testing.T) {
	v := NewLocalVerifier("shared-secret")
	raw := mintToken(t, "other-secret", "user-1")

	_, err := v.Verify(context.Background(), raw)
	require.Error(t, err)
}

func TestLocalVerifierGarbage(t *testing.T) {
	v := NewLocalVerifier("shared-secret")
	_, err := v.Verify(context.Background(), "not-a-jwt")
	require.Error(t, err)
}
