package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Identity defaults
	DefaultKeyPath = "~/.ssh/id_ed25519"
	DefaultSSHUser = "git"

	// Network defaults
	DefaultNetworkTimeout = 10 * time.Minute

	// Scratch defaults
	DefaultScratchName    = "ghget"
	DefaultLockTimeout    = 1 * time.Second
	DefaultCleanupRetries = 3

	// Output defaults
	DefaultOutputDir = "."

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultScratchDir returns the deterministic scratch clone path
func DefaultScratchDir() string {
	return filepath.Join(os.TempDir(), DefaultScratchName)
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ghget"
	}
	return filepath.Join(home, ".ghget")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Identity: IdentityConfig{
			KeyPath: DefaultKeyPath,
			User:    DefaultSSHUser,
		},
		Network: NetworkConfig{
			Timeout: DefaultNetworkTimeout,
		},
		Scratch: ScratchConfig{
			Directory:      DefaultScratchDir(),
			LockTimeout:    DefaultLockTimeout,
			CleanupRetries: DefaultCleanupRetries,
		},
		Output: OutputConfig{
			Directory: DefaultOutputDir,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
