package cli

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/battletracker/battletracker/internal/config"
	"github.com/battletracker/battletracker/internal/dashboard"
	"github.com/battletracker/battletracker/internal/logger"
	"github.com/battletracker/battletracker/internal/monitor"
)

// plainOutput forces line output even on a terminal.
var plainOutput bool

// dashboardCommand loads config and runs the dashboard until quit or ctx ends.
func dashboardCommand(ctx context.Context, plain bool) error {
	interactive := !plain && term.IsTerminal(int(os.Stdout.Fd()))

	// The dashboard owns the screen, so logs go to its console view.
	var console *logger.Console
	var log logger.Logger
	if interactive {
		console = newConsole()
		log = console
	} else {
		log = stderrLogger()
	}

	a, err := loadApp(log)
	if err != nil {
		return err
	}
	cfg := a.Config

	client := a.newClient()
	defer client.Close()

	log.Info("Loaded %d server IDs from %s", len(cfg.ServerIDs), a.ConfigPath)

	return dashboard.Run(ctx, dashboard.RunOptions{
		IDs:  cfg.ServerIDs,
		Grid: dashboard.Grid{Columns: cfg.Grid.Columns, Rows: cfg.Grid.Rows},
		Env: monitor.Env{
			Fetcher:         client,
			Log:             log,
			RefreshWhenDown: cfg.Refresh.WhenDown,
			HistorySize:     cfg.HistorySize,
		},
		Jitter:   monitor.NewJitter(cfg.Refresh.MinInterval, cfg.Refresh.MaxInterval, nil),
		Console:  console,
		Log:      log,
		AboutURL: cfg.AboutURL,
		SaveIDs: func(ids []string) error {
			return config.SetServerIDs(a.ConfigPath, ids)
		},
		Plain: !interactive,
	})
}
