// Test Type: Unit Test
// Description: Tests for the config package - TOML loading, defaults and
// retry-policy conversion

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/runlink/pkg/config"
	"github.com/arthur-debert/runlink/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 20, cfg.Delete.RetryAttempts)
	assert.Equal(t, 5, cfg.Delete.RetryDelayMS)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDeleteTunables(t *testing.T) {
	path := writeConfig(t, "[delete]\nretry_attempts = 40\nretry_delay_ms = 2\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Delete.RetryAttempts)
	assert.Equal(t, 2, cfg.Delete.RetryDelayMS)
}

func TestLoadPartialOverrideKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[delete]\nretry_attempts = 10\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Delete.RetryAttempts)
	assert.Equal(t, 5, cfg.Delete.RetryDelayMS)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "[delete]\nretry_attempts = 0\n")

	cfg, err := config.Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigParse, errors.GetErrorCode(err))
	// The caller still gets a usable configuration.
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[delete\nretry_attempts = =\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigLoad, errors.GetErrorCode(err))
}

func TestRetryPolicyConversion(t *testing.T) {
	cfg := config.Config{Delete: config.DeleteConfig{RetryAttempts: 7, RetryDelayMS: 3}}

	policy := cfg.RetryPolicy()
	assert.Equal(t, 7, policy.MaxAttempts)
	assert.Equal(t, 3*time.Millisecond, policy.Delay)
	assert.NotNil(t, policy.Sleep)
}
