package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/seawingai/nx/internal/defs"
)

// Loader reads the workspace configuration file and environment overrides.
type Loader struct {
	logger  *slog.Logger
	getenv  func(string) string
	sources []string
}

// NewLoader creates a new Loader. A nil logger uses the default logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: logger.With("module", "config"),
		getenv: os.Getenv,
	}
}

// Load returns the configuration for the workspace at root. Precedence,
// lowest first: compiled defaults, .nx-launch.yaml, .env, process environment.
// A missing file falls back to defaults; an unparsable one is an error.
func (l *Loader) Load(root string) (*Config, error) {
	l.sources = []string{"defaults"}
	cfg := NewDefaultConfig()

	loaded, err := loadYAMLFile(root, defs.ConfigYAML, cfg)
	if err != nil {
		return nil, err
	}
	if loaded {
		l.sources = append(l.sources, defs.ConfigYAML)
	} else {
		l.logger.Debug("config file not found, using defaults", "path", filepath.Join(root, defs.ConfigYAML))
	}

	dotenv, err := readDotEnv(root)
	if err != nil {
		l.logger.Warn("failed to read .env, ignoring it", "error", err)
	}
	l.applyEnv(cfg, dotenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sources lists where the last loaded configuration came from.
func (l *Loader) Sources() []string {
	return slices.Clone(l.sources)
}

// applyEnv overrides cfg from the process environment, falling back to
// values read from .env.
func (l *Loader) applyEnv(cfg *Config, dotenv map[string]string) {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvWebURL, &cfg.Web.URL},
		{EnvPackageManager, &cfg.Web.PackageManager},
		{EnvTestPattern, &cfg.Test.Pattern},
	}

	fromEnv, fromDotEnv := false, false
	for _, o := range overrides {
		if v := l.getenv(o.key); v != "" {
			*o.target = v
			fromEnv = true
			continue
		}
		if v := dotenv[o.key]; v != "" {
			*o.target = v
			fromDotEnv = true
		}
	}
	if fromDotEnv {
		l.sources = append(l.sources, defs.DotEnv)
	}
	if fromEnv {
		l.sources = append(l.sources, "environment")
	}
}

// loadYAMLFile reads a YAML file from the given directory and decodes it
// into target, rejecting unknown keys. Returns (true, nil) if the file was
// found and parsed, (false, nil) if the file does not exist, or
// (false, error) on failure.
func loadYAMLFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("parse %s: %w: %v", filename, ErrInvalidYAML, err)
	}

	return true, nil
}

// readDotEnv reads .env at root. A missing file yields an empty map.
func readDotEnv(root string) (map[string]string, error) {
	path := filepath.Join(root, defs.DotEnv)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return map[string]string{}, fmt.Errorf("read %s: %w", defs.DotEnv, err)
	}
	return values, nil
}
