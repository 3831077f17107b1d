package config

import "time"

const (
	defaultTickInterval = 100 * time.Millisecond
	defaultPollInterval = 2 * time.Second

	minPollInterval = 100 * time.Millisecond
	maxTickInterval = 10 * time.Second

	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			Compress:   true,
		},
		Preferences: PreferencesConfig{
			Sources:      []string{SourcePortal, SourceRegistry, SourceGsettings, SourceEnv},
			TickInterval: defaultTickInterval,
			PollInterval: defaultPollInterval,
		},
	}
}
