package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/battletracker/battletracker/internal/config"
	"github.com/battletracker/battletracker/internal/errors"
	"github.com/battletracker/battletracker/internal/monitor"
	"github.com/battletracker/battletracker/internal/ui"
)

// fetchJSON switches fetch output to a JSON envelope.
var fetchJSON bool

// fetchCmd fetches servers once and prints them
var fetchCmd = &cobra.Command{
	Use:   "fetch [id...]",
	Short: "Fetch servers once and print a table",
	Long: `Fetch each server once and print its name, player count and time.

Without arguments the configured server IDs are fetched. Exits non-zero if
any server could not be fetched.

Examples:
  battletracker fetch
  battletracker fetch 5526400 5526399
  battletracker fetch --json 5526400`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(stderrLogger())
		if err != nil {
			return err
		}

		ids := config.ParseIDs(strings.Join(args, ","))
		if len(ids) == 0 {
			ids = a.Config.ServerIDs
		}
		if len(ids) == 0 {
			return errors.New(errors.ErrConfig,
				"No server IDs to fetch",
				"Pass IDs as arguments, or add some with 'battletracker ids set'.")
		}

		client := a.newClient()
		defer client.Close()

		return fetchAndPrint(cmd.Context(), cmd.OutOrStdout(), client, ids, fetchJSON)
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(fetchCmd)
}

// fetchResult is one server in fetch's JSON output.
type fetchResult struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Name       string `json:"name,omitempty"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players,omitempty"`
	Time       string `json:"time,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// fetchAll fetches every id concurrently. Results keep the order of ids.
func fetchAll(ctx context.Context, f monitor.Fetcher, ids []string) []fetchResult {
	results := make([]fetchResult, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = fetchOne(ctx, f, id)
		}()
	}
	wg.Wait()

	return results
}

func fetchOne(ctx context.Context, f monitor.Fetcher, id string) fetchResult {
	server, err := f.Fetch(ctx, id)
	if err != nil {
		return fetchResult{
			ID:        id,
			Status:    monitor.StatusDown.String(),
			Error:     errors.Summary(err),
			ErrorCode: errors.Code(err),
		}
	}
	return fetchResult{
		ID:         id,
		Status:     monitor.StatusUp.String(),
		Name:       server.Name,
		Players:    server.Players,
		MaxPlayers: server.MaxPlayers,
		Time:       server.Time,
	}
}

// fetchAndPrint fetches ids and writes a table (or JSON) to w. It returns an
// error when any fetch failed.
func fetchAndPrint(ctx context.Context, w io.Writer, f monitor.Fetcher, ids []string, asJSON bool) error {
	results := fetchAll(ctx, f, ids)

	var down int
	rows := make([]ui.FetchRow, len(results))
	for i, r := range results {
		rows[i] = ui.FetchRow{
			ID:         r.ID,
			Name:       r.Name,
			Players:    r.Players,
			MaxPlayers: r.MaxPlayers,
			Time:       r.Time,
			Err:        r.Error,
		}
		if r.Error != "" {
			down++
		}
	}

	var failed error
	if down > 0 {
		failed = errors.New(errors.ErrFetch,
			fmt.Sprintf("%d of %d servers could not be fetched", down, len(results)),
			"Check the IDs on battlemetrics.com and your network connection.")
	}

	if asJSON {
		if err := WriteJSON(w, results, failed); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(w, ui.RenderFetchTable(rows))
	fmt.Fprintln(w, ui.Summary(len(results)-down, down))
	return failed
}
