package ui

// Status symbols for server rows.
const (
	SymbolUp      = "●" // Server answered
	SymbolDown    = "✗" // Fetch failed
	SymbolUnknown = "○" // Not fetched yet
	SymbolSuccess = "✓" // Command succeeded
)
