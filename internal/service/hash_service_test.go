package service_test

import (
	"strings"
	"testing"

	"barangay-request-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashService(t *testing.T) {
	svc := service.NewArgon2HashService()

	t.Run("hash and verify roundtrip", func(t *testing.T) {
		hash, err := svc.Hash("correct horse battery")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

		ok, err := svc.Verify("correct horse battery", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := svc.Hash("correct horse battery")
		require.NoError(t, err)

		ok, err := svc.Verify("wrong password", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("same password yields different hashes", func(t *testing.T) {
		h1, err := svc.Hash("samepassword")
		require.NoError(t, err)
		h2, err := svc.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("malformed hash is an error", func(t *testing.T) {
		_, err := svc.Verify("anything", "not-a-valid-hash")
		assert.Error(t, err)
	})
}
