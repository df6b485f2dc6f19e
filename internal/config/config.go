// Package config loads service settings. Later sources override earlier
// ones: embedded defaults, a TOML file, environment variables, then flags.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const EnvPrefix = "NEWSBOARD_"

// Snapshot drivers.
const (
	DriverYAML   = "yaml"
	DriverBadger = "badger"
	DriverNone   = "none"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Log      LogConfig      `toml:"log"`

	// TestMode disables snapshot loading and saving.
	TestMode bool `toml:"-"`
}

type ServerConfig struct {
	Addr     string `toml:"addr"`
	DiagAddr string `toml:"diag_addr"`
}

type SnapshotConfig struct {
	Driver string `toml:"driver"`
	Dir    string `toml:"dir"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the configuration embedded in the binary.
func Default() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}

	return &config
}

// Load reads the TOML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, config.Validate()
}

// ApplyEnv overrides settings from NEWSBOARD_* variables.
func (c *Config) ApplyEnv() {
	c.Server.Addr = getEnv(EnvPrefix+"ADDR", c.Server.Addr)
	c.Server.DiagAddr = getEnv(EnvPrefix+"DIAG_ADDR", c.Server.DiagAddr)
	c.Snapshot.Driver = getEnv(EnvPrefix+"SNAPSHOT_DRIVER", c.Snapshot.Driver)
	c.Snapshot.Dir = getEnv(EnvPrefix+"SNAPSHOT_DIR", c.Snapshot.Dir)
	c.Log.Level = getEnv(EnvPrefix+"LOG_LEVEL", c.Log.Level)
	c.Log.Development = getEnvBool(EnvPrefix+"LOG_DEVELOPMENT", c.Log.Development)
	c.TestMode = getEnvBool(EnvPrefix+"TEST_MODE", c.TestMode)
}

func (c *Config) Validate() error {
	if c.Server.Addr == c.Server.DiagAddr {
		return fmt.Errorf("server addr and diag_addr are both %q", c.Server.Addr)
	}

	switch c.Snapshot.Driver {
	case DriverYAML, DriverBadger:
		if c.Snapshot.Dir == "" {
			return fmt.Errorf("snapshot driver %q needs a directory", c.Snapshot.Driver)
		}
	case DriverNone:
	default:
		return fmt.Errorf("unknown snapshot driver %q", c.Snapshot.Driver)
	}

	return nil
}

// SnapshotDriver is the driver actually used, which is always "none" in
// test mode.
func (c *Config) SnapshotDriver() string {
	if c.TestMode {
		return DriverNone
	}

	return c.Snapshot.Driver
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}
