// Package daemonconfig loads the small set of process-level settings the
// daemon needs before an X connection even exists: which configuration
// script to run, an optional control-socket path override, and the log
// level. Distinct from internal/config's live protocol-line pipeline,
// which replays after startup and on reload; this file is read once.
package daemonconfig

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Settings is the decoded daemon.yaml document.
type Settings struct {
	ConfigScript string `koanf:"config_script"`
	SocketPath   string `koanf:"socket_path"`
	LogLevel     string `koanf:"log_level"`
}

func defaults() Settings {
	return Settings{
		ConfigScript: filepath.Join(defaultConfigDir(), "mywm", "config"),
		LogLevel:     "info",
	}
}

func defaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

// Path resolves the daemon settings file: the explicit override if non-
// empty, else $XDG_CONFIG_HOME/mywm/daemon.yaml.
func Path(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(defaultConfigDir(), "mywm", "daemon.yaml")
}

// Load reads and parses the daemon settings file at path. A missing file
// is not an error — the built-in defaults (info log level, config script
// under the XDG config directory) apply, since a
// freshly installed mywm has no daemon.yaml yet.
func Load(path string) (Settings, error) {
	s := defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return s, fmt.Errorf("daemonconfig: load %s: %w", path, err)
	}
	if err := k.Unmarshal("", &s); err != nil {
		return s, fmt.Errorf("daemonconfig: unmarshal %s: %w", path, err)
	}
	return s, nil
}

// SlogLevel maps the LogLevel string to a slog.Level, defaulting to Info
// for an unrecognized value.
func (s Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
