package commands

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCreateKeyMaterial_PassphraseMode(t *testing.T) {
	t.Run("with configured passphrase", func(t *testing.T) {
		passphrase := base64.StdEncoding.EncodeToString(make([]byte, 32))
		t.Setenv("MASTER_PASSPHRASE", passphrase)

		err := RunCreateKeyMaterial(context.Background(), "test-key", "", "")
		require.NoError(t, err)
	})

	t.Run("generates passphrase when none configured", func(t *testing.T) {
		t.Setenv("MASTER_PASSPHRASE", "")

		err := RunCreateKeyMaterial(context.Background(), "", "", "")
		require.NoError(t, err)
	})

	t.Run("invalid passphrase", func(t *testing.T) {
		t.Setenv("MASTER_PASSPHRASE", "not-base64!!!")

		err := RunCreateKeyMaterial(context.Background(), "test-key", "", "")
		assert.Error(t, err)
	})

	t.Run("short passphrase", func(t *testing.T) {
		t.Setenv("MASTER_PASSPHRASE", base64.StdEncoding.EncodeToString([]byte("short")))

		err := RunCreateKeyMaterial(context.Background(), "test-key", "", "")
		assert.Error(t, err)
	})
}

func TestRunCreateKeyMaterial_KMSMode(t *testing.T) {
	t.Run("missing provider", func(t *testing.T) {
		err := RunCreateKeyMaterial(context.Background(), "test-key", "", "base64key://")
		assert.Error(t, err)
	})

	t.Run("localsecrets keeper", func(t *testing.T) {
		key := base64.URLEncoding.EncodeToString(make([]byte, 32))

		err := RunCreateKeyMaterial(context.Background(), "test-key", "localsecrets", "base64key://"+key)
		require.NoError(t, err)
	})
}
