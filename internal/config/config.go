package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/codefionn/xl/internal/consts"
)

// ShellConfig controls the SHELL formula function.
type ShellConfig struct {
	Enabled        bool     `json:"enabled"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	ValidateSyntax bool     `json:"validate_syntax"`
	Sandbox        bool     `json:"sandbox"`
	SandboxRWPaths []string `json:"sandbox_rw_paths,omitempty"` // writable in addition to the working directory
}

// Timeout returns the configured command timeout, falling back to the default.
func (s ShellConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return consts.DefaultShellTimeout
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// EvalConfig tunes formula evaluation.
type EvalConfig struct {
	Memoize bool `json:"memoize"`
}

// ServerConfig configures `xl serve`.
type ServerConfig struct {
	Addr       string `json:"addr"`
	AllowShell bool   `json:"allow_shell"`
}

// Config represents application configuration
type Config struct {
	DarkMode         bool         `json:"dark_mode"`
	HideUpdatePrompt bool         `json:"hide_update_prompt"`
	DefaultRows      int          `json:"default_rows"`
	DefaultCols      int          `json:"default_cols"`
	DefaultColWidth  int          `json:"default_col_width"`
	Shell            ShellConfig  `json:"shell"`
	Eval             EvalConfig   `json:"eval"`
	Server           ServerConfig `json:"server"`
	WatchFile        bool         `json:"watch_file"`
	LogLevel         string       `json:"log_level"` // debug, info, warn, error, none
	LogPath          string       `json:"-"`
}

func defaultConfigDir() string {
	if runtime.GOOS == "windows" {
		if appData := strings.TrimSpace(os.Getenv("APPDATA")); appData != "" {
			return filepath.Join(appData, "xl")
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Roaming", "xl")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "xl")
}

func defaultStateDir() string {
	switch runtime.GOOS {
	case "linux":
		if stateHome := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); stateHome != "" {
			return filepath.Join(stateHome, "xl")
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".local", "state", "xl")
	case "windows":
		if localAppData := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); localAppData != "" {
			return filepath.Join(localAppData, "xl")
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Local", "xl")
	default:
		return defaultConfigDir()
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultRows:     consts.DefaultRows,
		DefaultCols:     consts.DefaultCols,
		DefaultColWidth: consts.DefaultColWidth,
		Shell: ShellConfig{
			Enabled:        true,
			TimeoutSeconds: int(consts.DefaultShellTimeout / time.Second),
			ValidateSyntax: true,
		},
		Server: ServerConfig{
			Addr: consts.DefaultServerAddr,
		},
		WatchFile: true,
		LogLevel:  "info",
		LogPath:   filepath.Join(defaultStateDir(), "xl.log"),
	}
}

// Load reads the JSON config at path over the defaults. A missing file is
// not an error. XL_LOG_LEVEL and XL_LOG_FILE override the logging fields.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config.normalize()
	config.applyEnv()
	return config, nil
}

func (c *Config) normalize() {
	if c.DefaultRows <= 0 {
		c.DefaultRows = consts.DefaultRows
	}
	if c.DefaultCols <= 0 {
		c.DefaultCols = consts.DefaultCols
	}
	c.DefaultColWidth = consts.ClampColWidth(c.DefaultColWidth)
	if c.Shell.TimeoutSeconds <= 0 {
		c.Shell.TimeoutSeconds = int(consts.DefaultShellTimeout / time.Second)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = consts.DefaultServerAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(defaultStateDir(), "xl.log")
	}
}

func (c *Config) applyEnv() {
	if level := strings.TrimSpace(os.Getenv("XL_LOG_LEVEL")); level != "" {
		c.LogLevel = level
	}
	if path := strings.TrimSpace(os.Getenv("XL_LOG_FILE")); path != "" {
		c.LogPath = path
	}
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.json")
}
