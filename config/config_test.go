package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.supabase.co", cfg.URL)
	assert.Equal(t, "secret", cfg.ServiceKey)
	assert.Equal(t, "exec_sql", cfg.ExecFunction)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadMissingURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL")
}

func TestHTTPClientTimeout(t *testing.T) {
	cfg := &Config{Timeout: 3 * time.Second}
	assert.Equal(t, 3*time.Second, cfg.HTTPClient().Timeout)

	zero := &Config{}
	assert.Equal(t, 10*time.Second, zero.HTTPClient().Timeout)
}
