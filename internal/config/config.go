package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/ghget/internal/domain"
	"github.com/quantmind-br/ghget/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Network  NetworkConfig  `mapstructure:"network" yaml:"network"`
	Scratch  ScratchConfig  `mapstructure:"scratch" yaml:"scratch"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// IdentityConfig contains SSH identity settings
type IdentityConfig struct {
	KeyPath               string `mapstructure:"key_path" yaml:"key_path"`
	User                  string `mapstructure:"user" yaml:"user"`
	PassphraseEnv         string `mapstructure:"passphrase_env" yaml:"passphrase_env"`
	InsecureIgnoreHostKey bool   `mapstructure:"insecure_ignore_host_key" yaml:"insecure_ignore_host_key"`
}

// NetworkConfig contains remote access settings
type NetworkConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ScratchConfig contains settings for the temporary clone directory
type ScratchConfig struct {
	Directory      string        `mapstructure:"directory" yaml:"directory"`
	LockTimeout    time.Duration `mapstructure:"lock_timeout" yaml:"lock_timeout"`
	CleanupRetries int           `mapstructure:"cleanup_retries" yaml:"cleanup_retries"`
}

// OutputConfig contains settings for where extracted entries land
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Overwrite bool   `mapstructure:"overwrite" yaml:"overwrite"`
	Quiet     bool   `mapstructure:"quiet" yaml:"quiet"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Identity.KeyPath == "" {
		c.Identity.KeyPath = DefaultKeyPath
	}
	if c.Identity.User == "" {
		c.Identity.User = DefaultSSHUser
	}
	if c.Network.Timeout < time.Second {
		c.Network.Timeout = DefaultNetworkTimeout
	}
	if c.Scratch.Directory == "" {
		c.Scratch.Directory = DefaultScratchDir()
	}
	if c.Scratch.LockTimeout <= 0 {
		c.Scratch.LockTimeout = DefaultLockTimeout
	}
	if c.Scratch.CleanupRetries < 0 {
		return domain.NewValidationError("scratch.cleanup_retries", "must not be negative")
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	case "":
		c.Logging.Level = DefaultLogLevel
	default:
		return domain.NewValidationError("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}
	if c.Logging.Format != "pretty" && c.Logging.Format != "json" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

// ResolveIdentity turns the identity settings into the value used by every
// network operation of a run. The passphrase, if any, is read from the
// environment variable named by PassphraseEnv.
func (c *Config) ResolveIdentity() domain.Identity {
	id := domain.Identity{
		KeyPath:               utils.ExpandPath(c.Identity.KeyPath),
		User:                  c.Identity.User,
		InsecureIgnoreHostKey: c.Identity.InsecureIgnoreHostKey,
	}
	if c.Identity.PassphraseEnv != "" {
		id.Passphrase = os.Getenv(c.Identity.PassphraseEnv)
	}
	return id
}

// YAML renders the configuration as YAML
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
