package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// The legacy settings file predates config.json and only knows two keys.
const legacyHeader = "# xl spreadsheet settings"

// LegacyPath returns ~/.xlrc.
func LegacyPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".xlrc")
}

// ImportLegacy applies dark_mode and hide_update_prompt from a key=value
// file. A missing file leaves the config untouched.
func (c *Config) ImportLegacy(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open legacy settings: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		on := legacyBool(strings.TrimSpace(value))
		switch strings.TrimSpace(key) {
		case "dark_mode":
			c.DarkMode = on
		case "hide_update_prompt":
			c.HideUpdatePrompt = on
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read legacy settings: %w", err)
	}
	return nil
}

// SaveLegacy writes the two legacy keys so older builds see the toggle.
func (c *Config) SaveLegacy(path string) error {
	var b strings.Builder
	b.WriteString(legacyHeader + "\n")
	fmt.Fprintf(&b, "dark_mode=%s\n", strconv.FormatBool(c.DarkMode))
	fmt.Fprintf(&b, "hide_update_prompt=%s\n", strconv.FormatBool(c.HideUpdatePrompt))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write legacy settings: %w", err)
	}
	return nil
}

func legacyBool(v string) bool {
	return v == "true" || v == "1"
}
