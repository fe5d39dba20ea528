package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StdinPath makes Load read the manifest from standard input as YAML.
const StdinPath = "-"

// Loader reads manifest files from disk or stdin.
type Loader struct {
	stdin io.Reader
}

// NewLoader creates a loader reading "-" from os.Stdin.
func NewLoader() *Loader {
	return &Loader{stdin: os.Stdin}
}

// NewLoaderWithStdin creates a loader reading "-" from r.
func NewLoaderWithStdin(r io.Reader) *Loader {
	return &Loader{stdin: r}
}

// Load reads and parses the manifest at path. The format follows the file
// extension; stdin is always YAML, which also accepts JSON documents.
func (l *Loader) Load(path string) (*Config, error) {
	if path == StdinPath {
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest from stdin: %w", err)
		}
		return l.LoadFromBytes(data, ".yaml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return l.LoadFromBytes(data, filepath.Ext(path))
}

// LoadFromBytes parses and validates a manifest. Unknown keys are rejected
// so a misspelled option does not silently fall back to its default.
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	for i := range cfg.Sources {
		cfg.Sources[i].URL = strings.TrimSpace(cfg.Sources[i].URL)
		cfg.Sources[i].Output = strings.TrimSpace(cfg.Sources[i].Output)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
