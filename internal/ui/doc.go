// Package ui renders the non-interactive CLI output: the colour palette,
// status symbols and result tables used by subcommands such as fetch.
//
// The full-screen dashboard lives in the dashboard package and has its own
// styles; this package only covers line-oriented output.
package ui
