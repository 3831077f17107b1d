// Package cli holds the shared state of the sysprefs commands.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/sysprefs/internal/cli/styles"
	"github.com/bnema/sysprefs/internal/domain/build"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/config"
	"github.com/bnema/sysprefs/internal/logging"
	"github.com/rs/zerolog"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	logFile  *logging.FileWriter
	logLevel zerolog.Level

	// Context with logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp loads the configuration and sets up logging. An empty configFile
// selects the XDG location.
func NewApp(configFile string) (*App, error) {
	var (
		mgr *config.Manager
		err error
	)
	if configFile != "" {
		mgr, err = config.NewManagerWithFile(configFile)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}

	loadErr := mgr.Load()
	cfg := mgr.Get()

	logCfg := logging.ConfigFromValues(cfg.Logging.Level, cfg.Logging.Format)
	logFile, fileErr := openLogFile(cfg.Logging)
	if logFile != nil {
		logCfg.File = logFile
	}
	logger := logging.New(logCfg)
	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))

	if fileErr != nil {
		logger.Warn().Err(fileErr).Msg("file logging disabled")
	}
	if loadErr != nil {
		// Keep running on defaults; the user still gets preferences.
		logger.Warn().Err(loadErr).Str("file", mgr.GetConfigFile()).Msg("config not loaded, using defaults")
	}
	logger.Debug().Str("file", mgr.GetConfigFile()).Msg("config loaded")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(entity.DefaultPreferences()),
		logFile:       logFile,
		logLevel:      logCfg.Level,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// ViewLogger returns the logger to use while an interactive view owns the
// terminal: the log file when one is configured, otherwise a no-op logger.
func (a *App) ViewLogger() zerolog.Logger {
	if a.logFile == nil {
		return zerolog.Nop()
	}
	return logging.New(logging.Config{
		Level:  a.logLevel,
		Format: "json",
		Output: a.logFile,
	})
}

// LogFilePath returns the active log file, or "" when file logging is off.
func (a *App) LogFilePath() string {
	if a.logFile == nil {
		return ""
	}
	return a.logFile.Path()
}

// Close cancels the application context and closes the log file.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

func openLogFile(cfg config.LoggingConfig) (*logging.FileWriter, error) {
	if !cfg.File {
		return nil, nil
	}
	dir, err := config.GetLogDir()
	if err != nil {
		return nil, fmt.Errorf("resolve log dir: %w", err)
	}
	return logging.NewFileWriter(dir, cfg.MaxSizeMB, cfg.MaxBackups, cfg.Compress)
}
