package config

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Validate checks the configuration for correctness. All problems are
// collected into a single *ValidationErrors.
func (c *Config) Validate() error {
	var errs []ValidationError

	errs = append(errs, validateLayoutDir("layout.services", c.Layout.Services)...)
	errs = append(errs, validateLayoutDir("layout.web", c.Layout.Web)...)
	errs = append(errs, validateLayoutDir("layout.libs", c.Layout.Libs)...)
	errs = append(errs, validateURL(c.Web.URL)...)

	if strings.TrimSpace(c.Web.PackageManager) == "" || strings.ContainsAny(c.Web.PackageManager, " \t") {
		errs = append(errs, ValidationError{
			Field:   "web.package_manager",
			Message: "must be a single executable name (example: pnpm)",
			Value:   c.Web.PackageManager,
			Wrapped: ErrInvalidConfig,
		})
	}

	if strings.TrimSpace(c.Test.Pattern) == "" {
		errs = append(errs, ValidationError{
			Field:   "test.pattern",
			Message: "required field is empty (example: pattern: example.spec.ts)",
			Wrapped: ErrInvalidConfig,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateLayoutDir checks that a category directory is a non-empty path
// that stays inside the workspace.
func validateLayoutDir(field, dir string) []ValidationError {
	if strings.TrimSpace(dir) == "" {
		return []ValidationError{{
			Field:   field,
			Message: "required field is empty",
			Wrapped: ErrInvalidLayout,
		}}
	}
	if !filepath.IsLocal(filepath.FromSlash(dir)) {
		return []ValidationError{{
			Field:   field,
			Message: "must be a relative path inside the workspace",
			Value:   dir,
			Wrapped: ErrInvalidLayout,
		}}
	}
	return nil
}

func validateURL(raw string) []ValidationError {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []ValidationError{{
			Field:   "web.url",
			Message: "must be an absolute http or https URL",
			Value:   raw,
			Wrapped: ErrInvalidURL,
		}}
	}
	return nil
}
