package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		config := Default()

		assert.Equal(t, ":3333", config.Server.Addr)
		assert.Equal(t, ":9999", config.Server.DiagAddr)
		assert.Equal(t, DriverYAML, config.Snapshot.Driver)
		assert.Equal(t, "./database", config.Snapshot.Dir)
		assert.Equal(t, "info", config.Log.Level)
		assert.NoError(t, config.Validate())
	})

	t.Run("Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		data := "[server]\naddr = \":4000\"\n\n[snapshot]\ndriver = \"badger\"\ndir = \"/var/lib/newsboard\"\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":4000", config.Server.Addr)
		assert.Equal(t, ":9999", config.Server.DiagAddr, "unset keys keep defaults")
		assert.Equal(t, DriverBadger, config.Snapshot.Driver)
	})

	t.Run("LoadMissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("LoadUnknownDriver", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[snapshot]\ndriver = \"s3\"\n"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("SameAddrs", func(t *testing.T) {
		config := Default()
		config.Server.DiagAddr = config.Server.Addr

		assert.Error(t, config.Validate())
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvPrefix+"ADDR", ":5000")
		t.Setenv(EnvPrefix+"SNAPSHOT_DRIVER", DriverNone)
		t.Setenv(EnvPrefix+"TEST_MODE", "true")

		config := Default()
		config.ApplyEnv()

		assert.Equal(t, ":5000", config.Server.Addr)
		assert.Equal(t, DriverNone, config.Snapshot.Driver)
		assert.True(t, config.TestMode)
	})

	t.Run("TestModeDisablesSnapshots", func(t *testing.T) {
		config := Default()
		config.TestMode = true

		assert.Equal(t, DriverNone, config.SnapshotDriver())
	})
}
