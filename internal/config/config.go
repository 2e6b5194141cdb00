// Package config loads the INI-style configuration file spec.md §6
// describes: a single [history] section with three numeric column-width
// keys. The struct shape (unexported path field, CreateDefault/Load/Save,
// EnsureExists) mirrors internal/config/config.go from stefanom-schmux;
// the wire format is INI instead of JSON because the spec requires INI and
// no example in the corpus ships an INI parser to depend on instead
// (BurntSushi/toml in other examples parses TOML, a different grammar).
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Defaults from spec.md §6.
const (
	DefaultAuthorNameWidth    = 10
	DefaultAuthorRelDateWidth = 0
	DefaultModulesWidth       = 35
)

// Config holds the [history] section's three column-width keys.
type Config struct {
	AuthorNameWidth    int
	AuthorRelDateWidth int
	ModulesWidth       int

	path string
}

// CreateDefault returns a Config populated with spec.md §6's defaults,
// remembering configPath so a subsequent Save writes to the same location.
func CreateDefault(configPath string) *Config {
	return &Config{
		AuthorNameWidth:    DefaultAuthorNameWidth,
		AuthorRelDateWidth: DefaultAuthorRelDateWidth,
		ModulesWidth:       DefaultModulesWidth,
		path:               configPath,
	}
}

// DefaultPath is the platform config-directory path used when the caller
// doesn't override it (cmd/glv's default), mirroring how the teacher roots
// its own default under os.UserConfigDir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "glv", "config.ini"), nil
}

// Load reads and parses the INI file at configPath.
func Load(configPath string) (*Config, error) {
	f, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	cfg := CreateDefault(configPath)

	section := ""
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		if section != "history" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q is not a key=value pair", ErrInvalidConfig, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s must be an integer, got %q", ErrInvalidConfig, lineNo, key, value)
		}
		switch key {
		case "author_name_width":
			cfg.AuthorNameWidth = n
		case "author_rel_date_width":
			cfg.AuthorRelDateWidth = n
		case "modules_width":
			cfg.ModulesWidth = n
		default:
			return nil, fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidConfig, lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg back to the path it was loaded from or created with.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	body := fmt.Sprintf(
		"[history]\nauthor_name_width = %d\nauthor_rel_date_width = %d\nmodules_width = %d\n",
		c.AuthorNameWidth, c.AuthorRelDateWidth, c.ModulesWidth,
	)
	return os.WriteFile(c.path, []byte(body), 0o644)
}

// EnsureExists loads the config at path, creating and saving a default one
// if it doesn't exist yet. It reports whether a new file was created.
func EnsureExists(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, false, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, false, err
	}
	cfg = CreateDefault(path)
	if err := cfg.Save(); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}
