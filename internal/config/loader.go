package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration through the given viper instance
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// An explicit --config file is set with SetConfigFile before Load runs
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (GHGET_*)
	v.SetEnvPrefix("GHGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Identity defaults
	v.SetDefault("identity.key_path", DefaultKeyPath)
	v.SetDefault("identity.user", DefaultSSHUser)
	v.SetDefault("identity.passphrase_env", "")
	v.SetDefault("identity.insecure_ignore_host_key", false)

	// Network defaults
	v.SetDefault("network.timeout", DefaultNetworkTimeout)

	// Scratch defaults
	v.SetDefault("scratch.directory", DefaultScratchDir())
	v.SetDefault("scratch.lock_timeout", DefaultLockTimeout)
	v.SetDefault("scratch.cleanup_retries", DefaultCleanupRetries)

	// Output defaults
	v.SetDefault("output.directory", DefaultOutputDir)
	v.SetDefault("output.overwrite", false)
	v.SetDefault("output.quiet", false)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
