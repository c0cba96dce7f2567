// Package config loads runlink's optional configuration file. All values
// have working defaults; the file only exists to tune them.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/runlink/pkg/errors"
	"github.com/arthur-debert/runlink/pkg/junction"
)

// ConfigFileName is the per-user configuration file, looked up under the
// XDG config directory.
const ConfigFileName = "runlink.toml"

// Config holds the tunables read from runlink.toml.
type Config struct {
	// Delete tunes the directory-deletion retry loop.
	Delete DeleteConfig `koanf:"delete"`
}

// DeleteConfig mirrors junction.RetryPolicy in file-friendly units.
type DeleteConfig struct {
	RetryAttempts int `koanf:"retry_attempts"`
	RetryDelayMS  int `koanf:"retry_delay_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	policy := junction.DefaultRetryPolicy()
	return Config{
		Delete: DeleteConfig{
			RetryAttempts: policy.MaxAttempts,
			RetryDelayMS:  int(policy.Delay / time.Millisecond),
		},
	}
}

// Load reads the configuration from path, or from the default XDG location
// when path is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(xdg.ConfigHome, "runlink", ConfigFileName)
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config from %s", path)
	}
	if cfg.Delete.RetryAttempts <= 0 || cfg.Delete.RetryDelayMS < 0 {
		return Default(), errors.Newf(errors.ErrConfigParse,
			"delete.retry_attempts must be positive and delete.retry_delay_ms non-negative")
	}
	return cfg, nil
}

// RetryPolicy converts the delete tunables into the policy the junction
// package consumes.
func (c Config) RetryPolicy() junction.RetryPolicy {
	return junction.RetryPolicy{
		MaxAttempts: c.Delete.RetryAttempts,
		Delay:       time.Duration(c.Delete.RetryDelayMS) * time.Millisecond,
		Sleep:       time.Sleep,
	}
}
