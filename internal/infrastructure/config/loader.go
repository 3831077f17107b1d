package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	file      string
}

// NewManager creates a configuration manager using the XDG config file.
func NewManager() (*Manager, error) {
	configFile, err := GetConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerWithFile(configFile)
}

// NewManagerWithFile creates a configuration manager reading the given TOML file.
func NewManagerWithFile(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	// SYSPREFS_PREFERENCES_TICK_INTERVAL etc.
	v.SetEnvPrefix("SYSPREFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "SYSPREFS_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SYSPREFS_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SYSPREFS_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SYSPREFS_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
		file:      configFile,
	}, nil
}

// Load loads the configuration from file and environment variables.
// A default config file is written when none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.file, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.file,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.file,
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	sources := make([]string, 0, len(config.Preferences.Sources))
	for _, s := range config.Preferences.Sources {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			sources = append(sources, s)
		}
	}
	config.Preferences.Sources = sources

	o := &config.Preferences.Overrides
	o.ColorScheme = strings.ToLower(strings.TrimSpace(o.ColorScheme))
	o.Contrast = strings.ToLower(strings.TrimSpace(o.Contrast))
	o.ReducedMotion = strings.ToLower(strings.TrimSpace(o.ReducedMotion))
	o.ReducedTransparency = strings.ToLower(strings.TrimSpace(o.ReducedTransparency))
	o.AccentColor = strings.TrimSpace(o.AccentColor)
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Preferences.Sources = append([]string(nil), m.config.Preferences.Sources...)
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.file
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(filepath.Dir(m.file), dirPerm); err != nil {
		return err
	}
	if err := m.viper.SafeWriteConfigAs(m.file); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)

	m.viper.SetDefault("preferences.sources", defaults.Preferences.Sources)
	m.viper.SetDefault("preferences.tick_interval", defaults.Preferences.TickInterval.String())
	m.viper.SetDefault("preferences.poll_interval", defaults.Preferences.PollInterval.String())

	m.viper.SetDefault("preferences.overrides.color_scheme", "")
	m.viper.SetDefault("preferences.overrides.contrast", "")
	m.viper.SetDefault("preferences.overrides.reduced_motion", "")
	m.viper.SetDefault("preferences.overrides.reduced_transparency", "")
	m.viper.SetDefault("preferences.overrides.accent_color", "")
	m.viper.SetDefault("preferences.overrides.double_click_interval", "0s")
}
