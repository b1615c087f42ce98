package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/battletracker/battletracker/internal/config"
	"github.com/battletracker/battletracker/internal/errors"
)

// useConfig writes a config with ids to a temp dir and points --config at it.
func useConfig(t *testing.T, grid config.GridConfig, ids ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := config.DefaultConfig()
	cfg.ServerIDs = ids
	cfg.Grid = grid
	require.NoError(t, config.Save(path, cfg))

	setConfigFlag(t, path)
	return path
}

func setConfigFlag(t *testing.T, path string) {
	t.Helper()
	orig := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = orig })
}

func TestLoadApp_CreatesMissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	setConfigFlag(t, path)

	a, err := loadApp(nil)
	require.NoError(t, err)

	assert.Equal(t, path, a.ConfigPath)
	assert.Equal(t, config.DefaultServerIDs, a.Config.ServerIDs)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestLoadApp_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nhistory_size: 1\n"), 0o644))
	setConfigFlag(t, path)

	_, err := loadApp(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestSaveIDs(t *testing.T) {
	path := useConfig(t, config.GridConfig{Columns: 6, Rows: 7}, "1")
	a, err := loadApp(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, saveIDs(&buf, a, []string{"5526400", "5526399"}))

	assert.Contains(t, buf.String(), "Saved 2 server IDs to "+path)
	assert.Equal(t, []string{"5526400", "5526399"}, a.Config.ServerIDs)

	reloaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"5526400", "5526399"}, reloaded.ServerIDs)
}

func TestSaveIDs_WarnsAboutHiddenIDs(t *testing.T) {
	useConfig(t, config.GridConfig{Columns: 1, Rows: 1}, "1")
	a, err := loadApp(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, saveIDs(&buf, a, []string{"1", "2", "3"}))

	assert.Contains(t, buf.String(), "2 won't fit the 1x1 grid")
}

func TestSaveIDs_Rejects(t *testing.T) {
	path := useConfig(t, config.GridConfig{Columns: 6, Rows: 7}, "1")
	a, err := loadApp(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = saveIDs(&buf, a, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No server IDs given")

	err = saveIDs(&buf, a, []string{"servers/1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	reloaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, reloaded.ServerIDs, "rejected lists are not written")
	assert.Empty(t, buf.String())
}

func TestPrintIDs(t *testing.T) {
	a := &app{Config: config.DefaultConfig(), ConfigPath: "/tmp/config.yaml"}
	a.Config.ServerIDs = []string{"10", "20", "30"}
	a.Config.Grid = config.GridConfig{Columns: 1, Rows: 2}

	var buf bytes.Buffer
	printIDs(&buf, a)

	out := buf.String()
	assert.Contains(t, out, "Config: /tmp/config.yaml")
	assert.Contains(t, out, " 1. 10\n")
	assert.Contains(t, out, " 2. 20\n")
	assert.Contains(t, out, " 3. 30 ")
	assert.Contains(t, out, "(hidden)")
}

func TestPrintIDs_Empty(t *testing.T) {
	a := &app{Config: config.DefaultConfig(), ConfigPath: "config.yaml"}
	a.Config.ServerIDs = nil

	var buf bytes.Buffer
	printIDs(&buf, a)

	assert.Contains(t, buf.String(), "No server IDs configured")
}

func TestIDsCommands(t *testing.T) {
	path := useConfig(t, config.GridConfig{Columns: 6, Rows: 7}, "1")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"--config", path, "ids", "set", "7,8", "9", "8"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Saved 3 server IDs")

	buf.Reset()
	rootCmd.SetArgs([]string{"--config", path, "ids"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), " 1. 7\n")
	assert.Contains(t, buf.String(), " 2. 8\n")
	assert.Contains(t, buf.String(), " 3. 9\n")
}

func TestValidateIDInput(t *testing.T) {
	assert.NoError(t, validateIDInput("1, 2"))
	assert.Error(t, validateIDInput(" , "))
}
