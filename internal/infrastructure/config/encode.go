package config

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileView mirrors Config with durations as Go duration strings, the form
// viper reads back.
type fileView struct {
	Logging     LoggingConfig   `toml:"logging"`
	Preferences preferencesView `toml:"preferences"`
}

type preferencesView struct {
	Sources      []string      `toml:"sources"`
	TickInterval string        `toml:"tick_interval"`
	PollInterval string        `toml:"poll_interval"`
	Overrides    overridesView `toml:"overrides"`
}

type overridesView struct {
	ColorScheme         string `toml:"color_scheme"`
	Contrast            string `toml:"contrast"`
	ReducedMotion       string `toml:"reduced_motion"`
	ReducedTransparency string `toml:"reduced_transparency"`
	AccentColor         string `toml:"accent_color"`
	DoubleClickInterval string `toml:"double_click_interval"`
}

// MarshalTOML renders the configuration as a config file.
func (c *Config) MarshalTOML() ([]byte, error) {
	o := c.Preferences.Overrides
	view := fileView{
		Logging: c.Logging,
		Preferences: preferencesView{
			Sources:      c.Preferences.Sources,
			TickInterval: formatDuration(c.Preferences.TickInterval),
			PollInterval: formatDuration(c.Preferences.PollInterval),
			Overrides: overridesView{
				ColorScheme:         o.ColorScheme,
				Contrast:            o.Contrast,
				ReducedMotion:       o.ReducedMotion,
				ReducedTransparency: o.ReducedTransparency,
				AccentColor:         o.AccentColor,
				DoubleClickInterval: formatDuration(o.DoubleClickInterval),
			},
		},
	}
	if view.Preferences.Sources == nil {
		view.Preferences.Sources = []string{}
	}

	data, err := toml.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return d.String()
}
