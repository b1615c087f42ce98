package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Default values applied when a key is absent from the config file.
const (
	DefaultBaseURL     = "https://api.battlemetrics.com"
	DefaultTimeout     = 5 * time.Second
	DefaultMinInterval = 55
	DefaultMaxInterval = 65
	DefaultHistorySize = 60
	DefaultGridColumns = 6
	DefaultGridRows    = 7
	DefaultAboutURL    = "https://github.com/YakovAU"
)

// DefaultServerIDs is the identifier list written on first run.
var DefaultServerIDs = []string{"5526400", "5526399", "5526398", "1720719", "21395315", "21268704", "20237846"}

// Config represents the complete config.yaml file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// ServerIDs are the API identifiers to track, in display order.
	ServerIDs []string `yaml:"server_ids" mapstructure:"server_ids"`

	API         APIConfig     `yaml:"api" mapstructure:"api"`
	Refresh     RefreshConfig `yaml:"refresh" mapstructure:"refresh"`
	HistorySize int           `yaml:"history_size" mapstructure:"history_size"`
	Grid        GridConfig    `yaml:"grid" mapstructure:"grid"`

	// AboutURL is opened in the browser from the dashboard.
	AboutURL string `yaml:"about_url" mapstructure:"about_url"`
}

// APIConfig controls how the stats API is queried.
type APIConfig struct {
	// BaseURL is the API root; requests go to <BaseURL>/servers/<id>.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RefreshConfig controls per-server polling.
type RefreshConfig struct {
	// MinInterval and MaxInterval bound the jittered refresh interval, in seconds.
	MinInterval int `yaml:"min_interval" mapstructure:"min_interval"`
	MaxInterval int `yaml:"max_interval" mapstructure:"max_interval"`

	// WhenDown allows manual refresh of a server that is currently down.
	WhenDown bool `yaml:"when_down" mapstructure:"when_down"`
}

// GridConfig bounds the dashboard layout. Servers beyond Columns*Rows are not shown.
type GridConfig struct {
	Columns int `yaml:"columns" mapstructure:"columns"`
	Rows    int `yaml:"rows" mapstructure:"rows"`
}

// Capacity returns how many servers the grid can hold.
func (g GridConfig) Capacity() int {
	if g.Columns <= 0 || g.Rows <= 0 {
		return 0
	}
	return g.Columns * g.Rows
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	ids := make([]string, len(DefaultServerIDs))
	copy(ids, DefaultServerIDs)

	return &Config{
		Version:   CurrentConfigVersion,
		ServerIDs: ids,
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Refresh: RefreshConfig{
			MinInterval: DefaultMinInterval,
			MaxInterval: DefaultMaxInterval,
			WhenDown:    false,
		},
		HistorySize: DefaultHistorySize,
		Grid: GridConfig{
			Columns: DefaultGridColumns,
			Rows:    DefaultGridRows,
		},
		AboutURL: DefaultAboutURL,
	}
}
