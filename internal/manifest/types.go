package manifest

import (
	"fmt"
	"strings"
)

// Config is a parsed manifest.
type Config struct {
	Sources []Source `yaml:"sources" json:"sources"`
	Options Options  `yaml:"options" json:"options"`
}

// Source is one URL to fetch.
type Source struct {
	URL    string `yaml:"url" json:"url"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// Force overrides the global overwrite setting when set.
	Force *bool `yaml:"force,omitempty" json:"force,omitempty"`
}

// Options apply to every source in the manifest.
type Options struct {
	ContinueOnError bool   `yaml:"continue_on_error" json:"continue_on_error"`
	Output          string `yaml:"output,omitempty" json:"output,omitempty"`
}

// Validate checks that every source has a URL and that no URL is listed
// twice for the same output directory.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]int, len(c.Sources))
	for i, src := range c.Sources {
		url := strings.TrimSpace(src.URL)
		if url == "" {
			return fmt.Errorf("source %d: %w", i, ErrEmptyURL)
		}
		key := c.OutputFor(src, "") + "\x00" + url
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("source %d: %w of source %d: %s", i, ErrDuplicateSource, prev, url)
		}
		seen[key] = i
	}
	return nil
}

// OutputFor returns the destination directory for src. The per-source
// value wins over options.output, which wins over fallback.
func (c *Config) OutputFor(src Source, fallback string) string {
	if src.Output != "" {
		return src.Output
	}
	if c.Options.Output != "" {
		return c.Options.Output
	}
	return fallback
}

// ForceFor reports whether src may overwrite an existing entry.
func (c *Config) ForceFor(src Source, fallback bool) bool {
	if src.Force != nil {
		return *src.Force
	}
	return fallback
}
