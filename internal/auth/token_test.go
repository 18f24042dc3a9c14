package auth_test

import (
	"testing"
	"time"

	"github.com/jobflow/jobflow/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tokens := auth.NewTokenManager("secret", time.Hour)

		signed, err := tokens.Sign("user-1")
		require.NoError(t, err)
		require.NotEmpty(t, signed)

		userID, err := tokens.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		tokens := auth.NewTokenManager("secret", time.Hour)

		_, err := tokens.Verify("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		tokens := auth.NewTokenManager("secret", time.Hour)
		other := auth.NewTokenManager("different", time.Hour)

		signed, err := other.Sign("user-1")
		require.NoError(t, err)

		_, err = tokens.Verify(signed)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		tokens := auth.NewTokenManager("secret", -time.Minute)

		signed, err := tokens.Sign("user-1")
		require.NoError(t, err)

		_, err = tokens.Verify(signed)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Run("verifies correct password", func(t *testing.T) {
		hash, err := auth.HashPassword("s3cret-password")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-password", hash)

		assert.True(t, auth.VerifyPassword("s3cret-password", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		hash, err := auth.HashPassword("s3cret-password")
		require.NoError(t, err)

		assert.False(t, auth.VerifyPassword("other-password", hash))
	})
}
