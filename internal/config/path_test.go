package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("PIGGYBACK_TEST_DIR", "/var/data")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "absolute path unchanged",
			input:    "/etc/piggyback/config.yaml",
			expected: "/etc/piggyback/config.yaml",
		},
		{
			name:     "tilde expansion",
			input:    "~/budget.db",
			expected: filepath.Join(home, "budget.db"),
		},
		{
			name:     "bare tilde",
			input:    "~",
			expected: home,
		},
		{
			name:     "environment variable expansion",
			input:    "$PIGGYBACK_TEST_DIR/budget.db",
			expected: "/var/data/budget.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestLoadPlaidConfig_EnvFallback(t *testing.T) {
	t.Setenv("PLAID_CLIENT_ID", "env-client")
	t.Setenv("PLAID_SECRET", "env-secret")
	t.Setenv("PLAID_ENVIRONMENT", "")
	t.Setenv("PLAID_ACCESS_TOKEN", "env-token")

	cfg := LoadPlaidConfig()

	assert.Equal(t, "env-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.Secret)
	assert.Equal(t, "env-token", cfg.AccessToken)
	assert.Equal(t, "sandbox", cfg.Environment)
}
