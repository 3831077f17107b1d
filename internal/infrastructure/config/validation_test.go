package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "chatty" },
			wantErr: "logging.level",
		},
		{
			name:    "negative log backups",
			mutate:  func(c *Config) { c.Logging.MaxBackups = -1 },
			wantErr: "logging.max_backups",
		},
		{
			name:    "duplicate source",
			mutate:  func(c *Config) { c.Preferences.Sources = []string{SourceEnv, SourceEnv} },
			wantErr: "listed twice",
		},
		{
			name:    "poll too fast",
			mutate:  func(c *Config) { c.Preferences.PollInterval = time.Millisecond },
			wantErr: "poll_interval",
		},
		{
			name:    "tick too slow",
			mutate:  func(c *Config) { c.Preferences.TickInterval = time.Minute },
			wantErr: "tick_interval",
		},
		{
			name:    "bad contrast override",
			mutate:  func(c *Config) { c.Preferences.Overrides.Contrast = "extreme" },
			wantErr: "overrides.contrast",
		},
		{
			name:    "bad accent color",
			mutate:  func(c *Config) { c.Preferences.Overrides.AccentColor = "blue" },
			wantErr: "accent_color",
		},
		{
			name:    "negative double click",
			mutate:  func(c *Config) { c.Preferences.Overrides.DoubleClickInterval = -time.Second },
			wantErr: "double_click_interval",
		},
		{
			name: "valid overrides",
			mutate: func(c *Config) {
				c.Preferences.Overrides = OverridesConfig{
					ColorScheme:         "prefer-dark",
					Contrast:            "more",
					ReducedMotion:       "reduce",
					ReducedTransparency: "reduce",
					AccentColor:         "#ff7800",
					DoubleClickInterval: 300 * time.Millisecond,
				}
			},
		},
		{
			name:   "no sources is allowed",
			mutate: func(c *Config) { c.Preferences.Sources = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
