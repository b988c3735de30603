package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the root configuration for ctt, stored in ~/.ctt/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// Timezone is the single IANA zone all wall-clock times live in.
	Timezone string `json:"timezone"`
	// HorizonMinutes is the look-ahead of the upcoming-class reminder.
	HorizonMinutes int           `json:"horizon_minutes"`
	Log            LogConfig     `json:"log"`
	Server         ServerConfig  `json:"server"`
	Outlook        OutlookConfig `json:"outlook"`
	// AccentColor is the lipgloss color used by the interactive session.
	AccentColor string `json:"accent_color"`
}

// LogConfig selects zerolog level and output format.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // "pretty" or "json"
}

// ServerConfig configures `ctt serve`.
type ServerConfig struct {
	Addr string `json:"addr"`
	// AllowedOrigins restricts CORS. Empty allows every origin.
	AllowedOrigins []string `json:"allowed_origins"`
	// SessionTTLMinutes is how long an idle API session keeps its schedule.
	SessionTTLMinutes int `json:"session_ttl_minutes"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
}

const (
	DefaultTimezone       = "Asia/Shanghai"
	DefaultHorizonMinutes = 15
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "pretty"
	DefaultServerAddr     = ":8080"
	DefaultSessionTTL     = 120
	DefaultAccentColor    = "39"
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID, usable for
	// the device code flow without a client secret.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Timezone:       DefaultTimezone,
		HorizonMinutes: DefaultHorizonMinutes,
		Log:            LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Server: ServerConfig{
			Addr:              DefaultServerAddr,
			AllowedOrigins:    []string{},
			SessionTTLMinutes: DefaultSessionTTL,
		},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
		},
		AccentColor: DefaultAccentColor,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// ctt configuration – ~/.ctt/config.json
//
// All settings are optional. Environment variables (CTT_*) and a .env file in
// the working directory override the values below.
{
  // IANA timezone for "now" in reminders and calendar exports.
  "timezone": "Asia/Shanghai",

  // Minutes ahead that "ctt upcoming" looks for classes.
  "horizon_minutes": 15,

  // Log level (trace, debug, info, warn, error) and format (pretty, json).
  "log": {
    "level": "info",
    "format": "pretty"
  },

  // HTTP API started by "ctt serve".
  "server": {
    "addr": ":8080",
    "allowed_origins": [],
    "session_ttl_minutes": 120
  },

  // Microsoft Graph / Outlook calendar import ("ctt outlook sync").
  "outlook": {
    "tenant_id": "common",
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab"
  },

  // Accent color of the interactive session (ANSI 256 code or #hex).
  "accent_color": "39"
}
`

// Dir returns the ctt home directory (~/.ctt).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ctt"), nil
}

func configFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ctt/config.json, creating it with annotated defaults on first
// run, then applies environment overrides. An optional .env file in the
// working directory is loaded first.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg, err := loadFile()
	applyEnv(&cfg)
	return cfg, err
}

func loadFile() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	return parse(data, path)
}

func parse(data []byte, path string) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Zero values left by a partially filled file fall back to defaults.
	def := Default()
	if cfg.Timezone == "" {
		cfg.Timezone = def.Timezone
	}
	if cfg.HorizonMinutes <= 0 {
		cfg.HorizonMinutes = def.HorizonMinutes
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.SessionTTLMinutes <= 0 {
		cfg.Server.SessionTTLMinutes = def.Server.SessionTTLMinutes
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = def.Outlook.TenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = def.Outlook.ClientID
	}
	if cfg.AccentColor == "" {
		cfg.AccentColor = def.AccentColor
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Timezone = getEnv("CTT_TIMEZONE", cfg.Timezone)
	cfg.HorizonMinutes = getEnvInt("CTT_HORIZON_MINUTES", cfg.HorizonMinutes)
	cfg.Log.Level = getEnv("CTT_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("CTT_LOG_FORMAT", cfg.Log.Format)
	cfg.Server.Addr = getEnv("CTT_SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.SessionTTLMinutes = getEnvInt("CTT_SESSION_TTL_MINUTES", cfg.Server.SessionTTLMinutes)
	if v := os.Getenv("CTT_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = parseList(v)
	}
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Horizon returns the reminder look-ahead as a duration.
func (c Config) Horizon() time.Duration {
	return time.Duration(c.HorizonMinutes) * time.Minute
}

// SessionTTL returns the idle lifetime of an API session.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// parseList splits a comma-separated string into trimmed, non-empty parts.
func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
