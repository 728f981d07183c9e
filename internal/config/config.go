package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "SCORECARD"

// Formats lists the accepted values of the format key.
var Formats = []string{"text", "json", "markdown", "csv", "html"}

// LogLevels lists the accepted values of the logLevel key.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config represents the scorecard configuration.
type Config struct {
	DataFile   string       `json:"dataFile" mapstructure:"dataFile"`
	Format     string       `json:"format" mapstructure:"format"`
	Color      bool         `json:"color" mapstructure:"color"`
	ChartWidth int          `json:"chartWidth" mapstructure:"chartWidth"`
	LogLevel   string       `json:"logLevel" mapstructure:"logLevel"`
	Server     ServerConfig `json:"server" mapstructure:"server"`
	Sheets     SheetsConfig `json:"sheets" mapstructure:"sheets"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// SheetsConfig controls the Google Sheets export.
type SheetsConfig struct {
	CredentialsFile string `json:"credentialsFile,omitempty" mapstructure:"credentialsFile"`
	SpreadsheetID   string `json:"spreadsheetId,omitempty" mapstructure:"spreadsheetId"`
}

// envKeys maps config keys to their environment variables.
var envKeys = map[string]string{
	"dataFile":               EnvPrefix + "_DATA_FILE",
	"format":                 EnvPrefix + "_FORMAT",
	"color":                  EnvPrefix + "_COLOR",
	"chartWidth":             EnvPrefix + "_CHART_WIDTH",
	"logLevel":               EnvPrefix + "_LOG_LEVEL",
	"server.addr":            EnvPrefix + "_SERVER_ADDR",
	"sheets.credentialsFile": EnvPrefix + "_SHEETS_CREDENTIALS_FILE",
	"sheets.spreadsheetId":   EnvPrefix + "_SHEETS_SPREADSHEET_ID",
}

// Keys returns the settable config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(envKeys))
	for k := range envKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// EnvVar returns the environment variable bound to key.
func EnvVar(key string) string {
	return envKeys[key]
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		DataFile:   "data.csv",
		Format:     "text",
		Color:      true,
		ChartWidth: 40,
		LogLevel:   "info",
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for scorecard.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scorecard"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "scorecard"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "scorecard"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "scorecard"), nil
	default:
		return filepath.Join(home, ".config", "scorecard"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadStored returns the defaults overlaid with the config file, ignoring the
// environment. It is the base that config edits are applied to.
func LoadStored() (Config, error) {
	v := viper.New()
	setDefaults(v)
	if _, err := readFile(v); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags; empty values are ignored. A .env file
// in the working directory is loaded first and never overrides variables that
// are already set.
func Load(overrides map[string]string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if _, err := readFile(v); err != nil {
		return Config{}, err
	}
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}
	for key, value := range overrides {
		if value != "" {
			v.Set(key, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("dataFile", d.DataFile)
	v.SetDefault("format", d.Format)
	v.SetDefault("color", d.Color)
	v.SetDefault("chartWidth", d.ChartWidth)
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("sheets.credentialsFile", "")
	v.SetDefault("sheets.spreadsheetId", "")
}

// readFile points v at the config file and reads it when present.
func readFile(v *viper.Viper) (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file: %w", err)
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return false, fmt.Errorf("reading config file: %w", err)
	}
	return true, nil
}

// Validate checks enumerated and numeric keys.
func (c Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("dataFile must not be empty")
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("format must be one of %s, got %q", strings.Join(Formats, ", "), c.Format)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("logLevel must be one of %s, got %q", strings.Join(LogLevels, ", "), c.LogLevel)
	}
	if c.ChartWidth < 1 {
		return fmt.Errorf("chartWidth must be positive, got %d", c.ChartWidth)
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "dataFile":
		cfg.DataFile = value
	case "format":
		cfg.Format = value
	case "color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("color must be true or false: %w", err)
		}
		cfg.Color = b
	case "chartWidth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("chartWidth must be an integer: %w", err)
		}
		cfg.ChartWidth = n
	case "logLevel":
		cfg.LogLevel = value
	case "server.addr":
		cfg.Server.Addr = value
	case "sheets.credentialsFile":
		cfg.Sheets.CredentialsFile = value
	case "sheets.spreadsheetId":
		cfg.Sheets.SpreadsheetID = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return cfg.Validate()
}
