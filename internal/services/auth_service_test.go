package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	svc := NewAuthService()

	hash, err := svc.HashPassword("Secret1")
	require.NoError(t, err)
	require.NotEqual(t, "Secret1", hash)
	require.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)

	require.True(t, svc.CheckPassword("Secret1", hash))
	require.False(t, svc.CheckPassword("Wrong", hash))
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	svc := NewAuthService()
	require.False(t, svc.CheckPassword("anything", "not-a-hash"))
}
