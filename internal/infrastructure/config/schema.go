package config

import "time"

// Config represents the complete configuration for sysprefs.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging"`
	// Preferences controls where system preferences are read from and how
	// often the host loop publishes them.
	Preferences PreferencesConfig `mapstructure:"preferences" yaml:"preferences" toml:"preferences"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level" toml:"level"`
	// Format is console or json.
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
	// File also writes logs to $XDG_STATE_HOME/sysprefs/sysprefs.log. The
	// interactive watch view only logs there.
	File bool `mapstructure:"file" yaml:"file" toml:"file"`
	// MaxSizeMB rotates the log file past this size. 0 disables rotation.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	// MaxBackups is how many rotated files to keep. 0 keeps all.
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups"`
	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress" yaml:"compress" toml:"compress"`
}

// Source names accepted in preferences.sources.
const (
	SourcePortal    = "portal"
	SourceRegistry  = "registry"
	SourceGsettings = "gsettings"
	SourceEnv       = "env"
)

// PreferencesConfig controls preference sources and timing.
type PreferencesConfig struct {
	// Sources lists the platform sources to merge, highest priority wins per field.
	Sources []string `mapstructure:"sources" yaml:"sources" toml:"sources"`
	// TickInterval is how often the host loop publishes the latest snapshot.
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval" toml:"tick_interval"`
	// PollInterval is used by sources without change notifications (gsettings, registry).
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
	// Overrides force values regardless of what the platform reports.
	Overrides OverridesConfig `mapstructure:"overrides" yaml:"overrides" toml:"overrides"`
}

// OverridesConfig holds user-forced preference values. Empty means "follow the system".
type OverridesConfig struct {
	// ColorScheme: light, dark or empty.
	ColorScheme string `mapstructure:"color_scheme" yaml:"color_scheme" toml:"color_scheme"`
	// Contrast: more, less, custom or empty.
	Contrast string `mapstructure:"contrast" yaml:"contrast" toml:"contrast"`
	// ReducedMotion: reduce or empty.
	ReducedMotion string `mapstructure:"reduced_motion" yaml:"reduced_motion" toml:"reduced_motion"`
	// ReducedTransparency: reduce or empty.
	ReducedTransparency string `mapstructure:"reduced_transparency" yaml:"reduced_transparency" toml:"reduced_transparency"`
	// AccentColor as #rrggbb.
	AccentColor string `mapstructure:"accent_color" yaml:"accent_color" toml:"accent_color"`
	// DoubleClickInterval, e.g. "400ms". Zero means unset.
	DoubleClickInterval time.Duration `mapstructure:"double_click_interval" yaml:"double_click_interval" toml:"double_click_interval"`
}

// IsSet reports whether any override is configured.
func (o OverridesConfig) IsSet() bool {
	return o != (OverridesConfig{})
}
