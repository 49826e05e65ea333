package config

import (
	"github.com/seawingai/nx/internal/defs"
)

// Default value constants.
const (
	DefaultWebURL         = "http://localhost:3000"
	DefaultPackageManager = "pnpm"
	DefaultTestPattern    = "example.spec.ts"
)

// Environment variables that override the configuration file.
const (
	EnvWebURL         = "NX_LAUNCH_WEB_URL"
	EnvPackageManager = "NX_LAUNCH_PACKAGE_MANAGER"
	EnvTestPattern    = "NX_LAUNCH_TEST_PATTERN"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
// The defaults describe a stock Nx layout.
func NewDefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Services: defs.ServicesDir,
			Web:      defs.WebDir,
			Libs:     defs.LibsDir,
		},
		Web: WebConfig{
			URL:            DefaultWebURL,
			PackageManager: DefaultPackageManager,
		},
		Test: TestConfig{
			Pattern: DefaultTestPattern,
		},
	}
}
