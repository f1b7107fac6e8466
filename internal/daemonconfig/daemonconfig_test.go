package daemonconfig

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.NotEmpty(t, s.ConfigScript)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"config_script: /etc/mywm/config\nsocket_path: /run/mywm/ctl.sock\nlog_level: debug\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/mywm/config", s.ConfigScript)
	assert.Equal(t, "/run/mywm/ctl.sock", s.SocketPath)
	assert.Equal(t, slog.LevelDebug, s.SlogLevel())
}

func TestPathPrefersExplicitOverride(t *testing.T) {
	assert.Equal(t, "/custom/daemon.yaml", Path("/custom/daemon.yaml"))
	assert.Contains(t, Path(""), filepath.Join("mywm", "daemon.yaml"))
}

func TestSlogLevelDefaultsToInfoForUnknownValue(t *testing.T) {
	s := Settings{LogLevel: "verbose"}
	assert.Equal(t, slog.LevelInfo, s.SlogLevel())
}
