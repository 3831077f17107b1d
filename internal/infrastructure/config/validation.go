package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateSources(config)...)
	validationErrors = append(validationErrors, validateIntervals(config)...)
	validationErrors = append(validationErrors, validateOverrides(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	validLevels := []string{"", "trace", "debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	validFormats := []string{"", "console", "json", "text"}
	if !slices.Contains(validFormats, config.Logging.Format) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validateSources(config *Config) []string {
	var validationErrors []string
	known := []string{SourcePortal, SourceRegistry, SourceGsettings, SourceEnv}
	seen := make(map[string]bool, len(config.Preferences.Sources))
	for _, s := range config.Preferences.Sources {
		if !slices.Contains(known, s) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("preferences.sources: unknown source %q (valid: %s)", s, strings.Join(known, ", ")))
			continue
		}
		if seen[s] {
			validationErrors = append(validationErrors, fmt.Sprintf("preferences.sources: %q listed twice", s))
		}
		seen[s] = true
	}
	return validationErrors
}

func validateIntervals(config *Config) []string {
	var validationErrors []string
	p := config.Preferences
	if p.TickInterval <= 0 || p.TickInterval > maxTickInterval {
		validationErrors = append(validationErrors,
			fmt.Sprintf("preferences.tick_interval must be in (0, %s] (got %s)", maxTickInterval, p.TickInterval))
	}
	if p.PollInterval < minPollInterval {
		validationErrors = append(validationErrors,
			fmt.Sprintf("preferences.poll_interval must be at least %s (got %s)", minPollInterval, p.PollInterval))
	}
	return validationErrors
}

func validateOverrides(config *Config) []string {
	var validationErrors []string
	o := config.Preferences.Overrides

	check := func(key, value string, valid ...string) {
		if value != "" && !slices.Contains(valid, value) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("preferences.overrides.%s must be one of %s (got %q)", key, strings.Join(valid, ", "), value))
		}
	}
	check("color_scheme", o.ColorScheme, "light", "dark", "prefer-light", "prefer-dark")
	check("contrast", o.Contrast, "more", "less", "custom", "high", "low")
	check("reduced_motion", o.ReducedMotion, "reduce")
	check("reduced_transparency", o.ReducedTransparency, "reduce")

	if o.AccentColor != "" {
		if _, err := colorful.Hex(o.AccentColor); err != nil {
			validationErrors = append(validationErrors,
				fmt.Sprintf("preferences.overrides.accent_color must be #rrggbb (got %q)", o.AccentColor))
		}
	}
	if o.DoubleClickInterval < 0 {
		validationErrors = append(validationErrors, "preferences.overrides.double_click_interval must be non-negative")
	}
	return validationErrors
}
