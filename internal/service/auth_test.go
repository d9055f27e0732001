package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Tokens(t *testing.T) {
	t.Run("Generated token parses back to the same user", func(t *testing.T) {
		// Given: an auth service with a secret
		auth := NewAuthService("test-secret")

		// When: issuing and parsing a token
		token, err := auth.GenerateToken("user-42")
		require.NoError(t, err)

		userID, err := auth.ParseToken(token)

		// Then: the subject survives the round trip
		require.NoError(t, err)
		assert.Equal(t, "user-42", userID)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		issuer := NewAuthService("secret-a")
		verifier := NewAuthService("secret-b")

		token, err := issuer.GenerateToken("user-42")
		require.NoError(t, err)

		_, err = verifier.ParseToken(token)

		assert.Error(t, err)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		auth := NewAuthService("test-secret")

		_, err := auth.ParseToken("not-a-token")

		assert.Error(t, err)
	})
}
