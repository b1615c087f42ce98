package cli

import (
	"github.com/battletracker/battletracker/internal/battlemetrics"
	"github.com/battletracker/battletracker/internal/config"
	"github.com/battletracker/battletracker/internal/logger"
)

// consoleLines bounds the dashboard's console view.
const consoleLines = 500

// app holds what commands need once config is loaded.
type app struct {
	Config     *config.Config
	ConfigPath string
	Log        logger.Logger
}

// loadApp loads .env, then the config file (writing defaults on first run),
// and validates it.
func loadApp(log logger.Logger) (*app, error) {
	if err := config.LoadEnvFile(""); err != nil {
		return nil, err
	}

	cfg, path, err := config.LoadOrCreate(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	log = logger.OrNoop(log)
	log.Debug("Loaded config from %s", path)
	return &app{Config: cfg, ConfigPath: path, Log: log}, nil
}

// newClient builds the stats API client from config.
func (a *app) newClient() *battlemetrics.Client {
	return battlemetrics.NewClient(
		battlemetrics.WithBaseURL(a.Config.API.BaseURL),
		battlemetrics.WithTimeout(a.Config.API.Timeout),
		battlemetrics.WithUserAgent("battletracker/"+version),
		battlemetrics.WithLogger(a.Log),
	)
}

// debugEnabled reports whether debug output was requested by flag or env.
func debugEnabled() bool {
	return verbose || logger.DebugEnabled()
}

// newConsole returns the log sink shown in the dashboard's console view.
func newConsole() *logger.Console {
	console := logger.NewConsole(consoleLines)
	console.SetDebug(debugEnabled())
	return console
}

// stderrLogger returns the logger for line-oriented output.
func stderrLogger() logger.Logger {
	if verbose {
		return logger.NewVerboseLogger("[battletracker]")
	}
	return logger.NewEnvLogger("[battletracker]")
}
