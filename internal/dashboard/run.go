package dashboard

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/battletracker/battletracker/internal/logger"
	"github.com/battletracker/battletracker/internal/monitor"
)

// RunOptions configures Run.
type RunOptions struct {
	IDs  []string
	Grid Grid

	// Env is shared by every monitor. OnChange is set by Run.
	Env    monitor.Env
	Jitter *monitor.Jitter

	Console  *logger.Console
	Log      logger.Logger
	AboutURL string
	SaveIDs  func(ids []string) error

	// Plain forces plain output even on a terminal.
	Plain bool
	// Output receives plain mode lines. Defaults to stdout.
	Output io.Writer
}

// Run shows the dashboard until the user quits or ctx is cancelled. When
// stdout is not a terminal it falls back to RunPlain.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return RunPlain(ctx, opts)
	}

	bridge := NewBridge(nil)
	env := opts.Env
	env.OnChange = bridge.Snapshot
	group := monitor.NewGroup(env, opts.Jitter)
	defer group.Close()

	model := NewModel(Options{
		Group:    group,
		IDs:      opts.IDs,
		Grid:     opts.Grid,
		Console:  opts.Console,
		Log:      opts.Log,
		AboutURL: opts.AboutURL,
		SaveIDs:  opts.SaveIDs,
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	bridge.Attach(program)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// RunPlain monitors the configured servers, printing a line per completed
// fetch, until ctx is cancelled.
func RunPlain(ctx context.Context, opts RunOptions) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	log := logger.OrNoop(opts.Log)

	printer := NewPlainPrinter(out)
	env := opts.Env
	env.OnChange = printer.Snapshot
	group := monitor.NewGroup(env, opts.Jitter)
	defer group.Close()

	grid := opts.Grid
	if grid.Capacity() == 0 {
		grid = Grid{Columns: 1, Rows: len(opts.IDs)}
	}
	visible, dropped := grid.Fit(opts.IDs)
	if len(dropped) > 0 {
		log.Debug("Grid holds %d servers, not monitoring %d more", grid.Capacity(), len(dropped))
	}
	log.Info("Monitoring %d servers (plain output)", len(visible))
	group.Replace(visible)

	<-ctx.Done()
	return nil
}
