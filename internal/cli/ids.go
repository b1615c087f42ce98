package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/battletracker/battletracker/internal/config"
	"github.com/battletracker/battletracker/internal/errors"
	"github.com/battletracker/battletracker/internal/ui"
	"github.com/battletracker/battletracker/internal/util"
)

// idsCmd prints the configured server IDs
var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Show the configured server IDs",
	Long: `Print the server IDs from the config file in display order.

IDs beyond the dashboard grid (columns x rows) are marked as hidden; they are
kept in the config but not monitored.

Examples:
  battletracker ids
  battletracker ids set 5526400,5526399
  battletracker ids edit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(stderrLogger())
		if err != nil {
			return err
		}
		printIDs(cmd.OutOrStdout(), a)
		return nil
	},
}

// idsSetCmd replaces the server ID list
var idsSetCmd = &cobra.Command{
	Use:   "set <id>[,<id>...]",
	Short: "Replace the server ID list",
	Long: `Replace the server IDs in the config file. IDs may be separated by
commas, spaces, or both. Duplicates are dropped and order is kept.

Examples:
  battletracker ids set 5526400,5526399
  battletracker ids set 5526400 5526399 1720719`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(stderrLogger())
		if err != nil {
			return err
		}
		return saveIDs(cmd.OutOrStdout(), a, config.ParseIDs(strings.Join(args, ",")))
	},
}

// idsEditCmd edits the server ID list with a prompt
var idsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the server ID list interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(stderrLogger())
		if err != nil {
			return err
		}

		value, ok, err := promptIDs(a.Config.ServerIDs)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		return saveIDs(cmd.OutOrStdout(), a, config.ParseIDs(value))
	},
}

func init() {
	idsCmd.AddCommand(idsSetCmd)
	idsCmd.AddCommand(idsEditCmd)
	rootCmd.AddCommand(idsCmd)
}

// printIDs lists the configured IDs, marking those that don't fit the grid.
func printIDs(w io.Writer, a *app) {
	ids := a.Config.ServerIDs
	fmt.Fprintf(w, "Config: %s\n", a.ConfigPath)
	if len(ids) == 0 {
		fmt.Fprintln(w, "No server IDs configured. Add some with 'battletracker ids set <id>,<id>'.")
		return
	}

	capacity := a.Config.Grid.Capacity()
	for i, id := range ids {
		if i >= capacity {
			fmt.Fprintf(w, "  %2d. %s %s\n", i+1, id, ui.MutedStyle.Render("(hidden)"))
			continue
		}
		fmt.Fprintf(w, "  %2d. %s\n", i+1, id)
	}
}

// saveIDs validates ids against the loaded config and persists them.
func saveIDs(w io.Writer, a *app, ids []string) error {
	if len(ids) == 0 {
		return errors.New(errors.ErrConfig,
			"No server IDs given",
			"Pass a comma separated list like 5526400,5526399.")
	}

	candidate := *a.Config
	candidate.ServerIDs = ids
	if err := config.Validate(&candidate); err != nil {
		return err
	}

	if err := config.SetServerIDs(a.ConfigPath, ids); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Could not save server IDs",
			"Check that "+a.ConfigPath+" is writable.")
	}
	a.Config.ServerIDs = ids

	fmt.Fprintf(w, "%s Saved %d server %s to %s\n",
		ui.SymbolSuccess, len(ids), util.Pluralize(len(ids), "ID", "IDs"), a.ConfigPath)
	if hidden := len(ids) - a.Config.Grid.Capacity(); hidden > 0 {
		fmt.Fprintf(w, "  %d won't fit the %dx%d grid and won't be monitored\n",
			hidden, a.Config.Grid.Columns, a.Config.Grid.Rows)
	}
	return nil
}

// promptIDs asks for a comma separated ID list. ok is false if the user aborted.
func promptIDs(current []string) (value string, ok bool, err error) {
	value = strings.Join(current, ", ")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server IDs").
				Description("Comma separated BattleMetrics server IDs").
				Value(&value).
				Validate(validateIDInput),
		),
	)
	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func validateIDInput(s string) error {
	if len(config.ParseIDs(s)) == 0 {
		return stderrors.New("enter at least one server ID")
	}
	return nil
}
