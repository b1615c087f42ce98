// Package dashboard implements the terminal dashboard for watched game servers.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: the id list, the latest Snapshot per server, selection and overlays
//   - Update: processes keystrokes, window sizes and SnapshotMsg
//   - View: renders the grid of server cards
//
// Monitors run on their own timers. Each one reports state changes through a
// Bridge, which hands them to the running program with Send so rendering
// stays on the program's loop. Monitor calls that may report a change are
// made from commands, never from Update, since Send blocks until the loop
// receives the message.
//
// # Grid
//
// Cards fill a fixed Columns x Rows grid column by column. Ids beyond the
// grid's capacity are not shown and no monitor is created for them.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	arrows/hjkl - Move selection
//	r           - Refresh the selected server
//	R           - Refresh every server
//	e           - Edit the server id list
//	c           - Toggle the console log view
//	o           - Open the project page
//	?           - Toggle help overlay
//	Esc         - Close overlay or dismiss notice
//
// # Plain mode
//
// When stdout is not a terminal, RunPlain prints one line per completed
// fetch instead of drawing the dashboard.
package dashboard
