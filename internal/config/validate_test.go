package config

import (
	"testing"
	"time"

	"github.com/battletracker/battletracker/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "empty id list is valid",
			modify: func(c *Config) { c.ServerIDs = nil },
		},
		{
			name:    "future version",
			modify:  func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr: "from the future",
		},
		{
			name:    "blank id",
			modify:  func(c *Config) { c.ServerIDs = []string{"1", "  "} },
			wantErr: "Server ID #2 is empty",
		},
		{
			name:    "id with path characters",
			modify:  func(c *Config) { c.ServerIDs = []string{"1/../2"} },
			wantErr: "doesn't look like a server ID",
		},
		{
			name:    "bad base url",
			modify:  func(c *Config) { c.API.BaseURL = "not a url" },
			wantErr: "isn't a valid http(s) URL",
		},
		{
			name:    "non-http scheme",
			modify:  func(c *Config) { c.API.BaseURL = "ftp://example.com" },
			wantErr: "isn't a valid http(s) URL",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout must be positive",
		},
		{
			name:    "min interval zero",
			modify:  func(c *Config) { c.Refresh.MinInterval = 0 },
			wantErr: "min_interval must be at least 1",
		},
		{
			name: "max below min",
			modify: func(c *Config) {
				c.Refresh.MinInterval = 30
				c.Refresh.MaxInterval = 20
			},
			wantErr: "is below refresh.min_interval",
		},
		{
			name: "equal bounds disable jitter",
			modify: func(c *Config) {
				c.Refresh.MinInterval = 60
				c.Refresh.MaxInterval = 60
			},
		},
		{
			name:    "history too small",
			modify:  func(c *Config) { c.HistorySize = 1 },
			wantErr: "history_size must be at least 2",
		},
		{
			name:    "empty grid",
			modify:  func(c *Config) { c.Grid.Rows = 0 },
			wantErr: "Grid must be at least 1x1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestGridConfig_Capacity(t *testing.T) {
	assert.Equal(t, 42, GridConfig{Columns: 6, Rows: 7}.Capacity())
	assert.Equal(t, 1, GridConfig{Columns: 1, Rows: 1}.Capacity())
	assert.Equal(t, 0, GridConfig{Columns: 0, Rows: 7}.Capacity())
	assert.Equal(t, 0, GridConfig{Columns: 3, Rows: -1}.Capacity())
}

func TestValidate_TimeoutFromDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Timeout = 250 * time.Millisecond
	assert.NoError(t, Validate(cfg))
}
