// Package cli implements the battletracker command-line interface.
//
// The root command runs the live dashboard. Subcommands cover the things
// worth doing without it:
//
//	battletracker              - Live dashboard (plain lines when not a TTY)
//	battletracker ids          - Show configured server IDs
//	battletracker ids set a,b  - Replace the server ID list
//	battletracker ids edit     - Edit the list with an interactive prompt
//	battletracker fetch [id]   - Fetch once and print a table
//	battletracker version      - Print version information
//
// Global flags (--config, --verbose) are defined on the root command. Every
// command loads config the same way through loadApp: .env first, then the
// config file (created with defaults on first run), then validation.
package cli
