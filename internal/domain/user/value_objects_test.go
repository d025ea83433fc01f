//go:build unit

package user_test

import (
	"testing"

	"recoil-backend/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		e, err := user.NewEmail("  buyer@example.com ")
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", e.Value())
	})

	cases := []string{"", "not-an-address", "@example.com", "buyer@", "buyer@host"}
	for _, input := range cases {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := user.NewEmail(input)
			assert.ErrorIs(t, err, user.ErrInvalidEmail)
		})
	}
}

func TestNewRole(t *testing.T) {
	role, err := user.NewRole("admin")
	require.NoError(t, err)
	assert.True(t, role.IsAdmin())

	_, err = user.NewRole("superuser")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}
