package config

import (
	"path/filepath"

	"github.com/seawingai/nx/internal/launch"
)

// Config is the root configuration aggregate.
type Config struct {
	Layout LayoutConfig `yaml:"layout"`
	Web    WebConfig    `yaml:"web"`
	Test   TestConfig   `yaml:"test"`
	Scan   ScanConfig   `yaml:"scan"`
}

// LayoutConfig names the category parents, slash-separated and relative to
// the workspace root.
type LayoutConfig struct {
	Services string `yaml:"services"`
	Web      string `yaml:"web"`
	Libs     string `yaml:"libs"`
}

// WebConfig holds the web app launch knobs.
type WebConfig struct {
	URL            string `yaml:"url"`
	PackageManager string `yaml:"package_manager"`
}

// TestConfig holds the library test launch knobs.
type TestConfig struct {
	Pattern string `yaml:"pattern"`
}

// ScanConfig controls which directories count as projects.
type ScanConfig struct {
	RespectGitignore bool `yaml:"respect_gitignore"`
	SkipHidden       bool `yaml:"skip_hidden"`
}

// Templates returns the launch templates described by the configuration.
func (c *Config) Templates() launch.Templates {
	return launch.Templates{
		WebDir:         c.Layout.Web,
		ClientURL:      c.Web.URL,
		PackageManager: c.Web.PackageManager,
		TestPattern:    c.Test.Pattern,
	}
}

// CategoryDirs returns the absolute services, web and libs parents under root.
func (c *Config) CategoryDirs(root string) (services, web, libs string) {
	return filepath.Join(root, filepath.FromSlash(c.Layout.Services)),
		filepath.Join(root, filepath.FromSlash(c.Layout.Web)),
		filepath.Join(root, filepath.FromSlash(c.Layout.Libs))
}
