package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config dir at a temp dir and clears SCORECARD_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range Keys() {
		t.Setenv(EnvVar(key), "")
		os.Unsetenv(EnvVar(key))
	}
	return dir
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, "scorecard", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data.csv", cfg.DataFile)
	assert.Equal(t, "text", cfg.Format)
	assert.True(t, cfg.Color)
	assert.Equal(t, 40, cfg.ChartWidth)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestConfigPath(t *testing.T) {
	dir := isolate(t)
	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scorecard", "config.json"), path)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	isolate(t)
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeConfigFile(t, dir, `{
  "dataFile": "file.csv",
  "format": "markdown",
  "chartWidth": 20,
  "server": {"addr": ":9000"}
}`)
	t.Setenv("SCORECARD_FORMAT", "json")
	t.Setenv("SCORECARD_COLOR", "false")

	cfg, err := Load(map[string]string{"dataFile": "flag.csv", "logLevel": ""})
	require.NoError(t, err)

	assert.Equal(t, "flag.csv", cfg.DataFile, "flag beats file")
	assert.Equal(t, "json", cfg.Format, "env beats file")
	assert.False(t, cfg.Color, "env beats default")
	assert.Equal(t, 20, cfg.ChartWidth, "file beats default")
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.LogLevel, "empty override is ignored")
}

func TestLoad_EnvNested(t *testing.T) {
	isolate(t)
	t.Setenv("SCORECARD_SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("SCORECARD_SHEETS_SPREADSHEET_ID", "sheet-123")
	t.Setenv("SCORECARD_CHART_WIDTH", "60")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "sheet-123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, 60, cfg.ChartWidth)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"bad format", "SCORECARD_FORMAT", "yaml"},
		{"bad width", "SCORECARD_CHART_WIDTH", "wide"},
		{"zero width", "SCORECARD_CHART_WIDTH", "0"},
		{"bad level", "SCORECARD_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.val)
			_, err := Load(nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	writeConfigFile(t, dir, `{not json`)
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestSaveAndLoadStored(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.DataFile = "reviews.csv"
	cfg.ChartWidth = 25
	cfg.Sheets.CredentialsFile = "/tmp/key.json"
	require.NoError(t, Save(cfg))

	loaded, err := LoadStored()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadStored_IgnoresEnv(t *testing.T) {
	dir := isolate(t)
	writeConfigFile(t, dir, `{"chartWidth": 12}`)
	t.Setenv("SCORECARD_FORMAT", "json")

	cfg, err := LoadStored()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.ChartWidth)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "data.csv", cfg.DataFile)
}

func TestLoadStored_NoFile(t *testing.T) {
	isolate(t)
	cfg, err := LoadStored()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSetField(t *testing.T) {
	cfg := Default()
	require.NoError(t, SetField(&cfg, "dataFile", "other.csv"))
	require.NoError(t, SetField(&cfg, "format", "html"))
	require.NoError(t, SetField(&cfg, "color", "false"))
	require.NoError(t, SetField(&cfg, "chartWidth", "12"))
	require.NoError(t, SetField(&cfg, "logLevel", "debug"))
	require.NoError(t, SetField(&cfg, "server.addr", ":1234"))
	require.NoError(t, SetField(&cfg, "sheets.credentialsFile", "key.json"))
	require.NoError(t, SetField(&cfg, "sheets.spreadsheetId", "abc"))

	assert.Equal(t, Config{
		DataFile:   "other.csv",
		Format:     "html",
		Color:      false,
		ChartWidth: 12,
		LogLevel:   "debug",
		Server:     ServerConfig{Addr: ":1234"},
		Sheets:     SheetsConfig{CredentialsFile: "key.json", SpreadsheetID: "abc"},
	}, cfg)
}

func TestSetField_Errors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"nope", "x"},
		{"color", "maybe"},
		{"chartWidth", "ten"},
		{"chartWidth", "-1"},
		{"format", "pdf"},
		{"dataFile", ""},
	}
	for _, tt := range tests {
		cfg := Default()
		assert.Error(t, SetField(&cfg, tt.key, tt.value), "SetField(%q, %q)", tt.key, tt.value)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 8)
	assert.Contains(t, keys, "server.addr")
	assert.Equal(t, "SCORECARD_DATA_FILE", EnvVar("dataFile"))
}
