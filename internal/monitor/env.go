package monitor

import (
	"context"

	"github.com/battletracker/battletracker/internal/battlemetrics"
	"github.com/battletracker/battletracker/internal/clock"
	"github.com/battletracker/battletracker/internal/errors"
	"github.com/battletracker/battletracker/internal/logger"
)

// Fetcher retrieves the current state of a server.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*battlemetrics.Server, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id string) (*battlemetrics.Server, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, id string) (*battlemetrics.Server, error) {
	return f(ctx, id)
}

// Env is everything a monitor needs from the application. Monitors never
// reach for globals; a zero Env is usable except for Fetcher.
type Env struct {
	Fetcher Fetcher
	Clock   clock.Clock
	Log     logger.Logger

	// OnChange receives a snapshot after every state change. It is called
	// without the monitor's lock held, possibly from a timer goroutine.
	OnChange func(Snapshot)

	// RefreshWhenDown allows ManualRefresh while the server is down.
	RefreshWhenDown bool

	// HistorySize is the number of player counts retained.
	HistorySize int

	// Go runs a fetch asynchronously. Defaults to starting a goroutine.
	Go func(func())
}

func (e Env) withDefaults() Env {
	if e.Fetcher == nil {
		e.Fetcher = FetcherFunc(func(context.Context, string) (*battlemetrics.Server, error) {
			return nil, errors.New(errors.ErrFetch, "No fetcher configured", "")
		})
	}
	if e.Clock == nil {
		e.Clock = clock.Real()
	}
	e.Log = logger.OrNoop(e.Log)
	if e.HistorySize <= 0 {
		e.HistorySize = DefaultHistorySize
	}
	if e.Go == nil {
		e.Go = func(f func()) { go f() }
	}
	return e
}
