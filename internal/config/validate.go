package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/battletracker/battletracker/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but battletracker only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade battletracker, or lower 'version' in the config file.")
	}

	for i, id := range cfg.ServerIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Server ID #%d is empty", i+1),
				"Remove the empty entry from 'server_ids'.")
		}
		if strings.ContainsAny(id, "/?# \t") {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a server ID", id),
				"Use the number from the server's page URL, like 5526400.")
		}
	}

	if err := validateAPI(cfg.API); err != nil {
		return err
	}

	if err := validateRefresh(cfg.Refresh); err != nil {
		return err
	}

	if cfg.HistorySize < 2 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history_size must be at least 2 (got %d)", cfg.HistorySize),
			"Two samples are needed to show a trend; the default is 60.")
	}

	if cfg.Grid.Columns < 1 || cfg.Grid.Rows < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Grid must be at least 1x1 (got %dx%d)", cfg.Grid.Columns, cfg.Grid.Rows),
			"Set grid.columns and grid.rows to positive numbers.")
	}

	return nil
}

func validateAPI(api APIConfig) error {
	u, err := url.Parse(api.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("api.base_url '%s' isn't a valid http(s) URL", api.BaseURL),
			"Use something like "+DefaultBaseURL)
	}

	if api.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"api.timeout must be positive",
			"Try something like 5s.")
	}

	return nil
}

func validateRefresh(r RefreshConfig) error {
	if r.MinInterval < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh.min_interval must be at least 1 second (got %d)", r.MinInterval),
			"The default range is 55-65 seconds.")
	}
	if r.MaxInterval < r.MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh.max_interval (%d) is below refresh.min_interval (%d)", r.MaxInterval, r.MinInterval),
			"Swap the values or make them equal to disable jitter.")
	}
	return nil
}
