package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/battletracker/battletracker/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
	// GlobalConfigDir is the directory for the per-user config.
	GlobalConfigDir = ".config/battletracker"
	// EnvPrefix is the prefix for environment overrides (BATTLETRACKER_API_TIMEOUT=10s).
	EnvPrefix = "BATTLETRACKER"
	// EnvFileName is loaded from the working directory when present.
	EnvFileName = ".env"
)

// Load reads config from the specified path.
// Environment variables prefixed with BATTLETRACKER_ override file values.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'battletracker' once to create one, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. config.yaml in current directory
// 3. ~/.config/battletracker/config.yaml
//
// Returns the path to the config file, or empty string if none exists yet.
// An explicit path is returned even when missing so first run can create it.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil && !os.IsNotExist(err) {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if global := GlobalPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// GlobalPath returns ~/.config/battletracker/config.yaml, or "" if the home
// directory is unknown.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}

// LoadOrCreate loads the config found by Find. When no config exists, the
// defaults are written first (to the explicit path, or the global path when
// none was given) and then loaded. Returns the config and the path it lives at.
func LoadOrCreate(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		path = GlobalPath()
		if path == "" {
			path = ConfigFileName
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, DefaultConfig()); err != nil {
			return nil, "", err
		}
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = EnvFileName
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read "+path,
			"Check the file uses KEY=VALUE lines")
	}
	return nil
}

// newViper returns a viper instance with defaults and env overrides wired up.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override it even when
// the file omits it.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("server_ids", def.ServerIDs)
	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout", def.API.Timeout.String())
	v.SetDefault("refresh.min_interval", def.Refresh.MinInterval)
	v.SetDefault("refresh.max_interval", def.Refresh.MaxInterval)
	v.SetDefault("refresh.when_down", def.Refresh.WhenDown)
	v.SetDefault("history_size", def.HistorySize)
	v.SetDefault("grid.columns", def.Grid.Columns)
	v.SetDefault("grid.rows", def.Grid.Rows)
	v.SetDefault("about_url", def.AboutURL)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.ServerIDs = NormalizeIDs(cfg.ServerIDs)

	return cfg, nil
}

// ParseIDs splits a comma-separated identifier list as typed by the user.
func ParseIDs(s string) []string {
	return NormalizeIDs(strings.Split(s, ","))
}

// NormalizeIDs trims whitespace, drops empty entries and duplicates, and
// keeps the first occurrence order.
func NormalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
