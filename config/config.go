// Package config contains the multisig tool configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/engine"
	"github.com/spacemeshos/go-multisig/filesystem"
	"github.com/spacemeshos/go-multisig/metrics"
	"github.com/spacemeshos/go-multisig/sql"
)

const defaultDataDirName = ".multisig"

// Config defines the top level configuration.
type Config struct {
	DataDirParent string `mapstructure:"data-dir"`

	Logging  LoggerConfig   `mapstructure:"logging"`
	Database sql.Config     `mapstructure:"database"`
	Engine   engine.Config  `mapstructure:"engine"`
	Address  types.Config   `mapstructure:"address"`
	Metrics  metrics.Config `mapstructure:"metrics"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDirParent: filepath.Join(filesystem.GetUserHomeDirectory(), defaultDataDirName),
		Logging:       defaultLoggingConfig(),
		Database:      sql.DefaultConfig(),
		Engine:        engine.DefaultConfig(),
		Address:       types.DefaultAddressConfig(),
		Metrics:       metrics.DefaultConfig(),
	}
}

// DefaultTestConfig returns the configuration used in tests.
func DefaultTestConfig() Config {
	cfg := DefaultConfig()
	cfg.DataDirParent = ""
	cfg.Address = types.DefaultTestAddressConfig()
	cfg.Database.Connections = 1
	return cfg
}

// DataDir returns the canonical path of the data directory.
func (cfg *Config) DataDir() string {
	return filesystem.GetCanonicalPath(cfg.DataDirParent)
}

// DatabasePath returns the database location. Relative paths are resolved against DataDir.
func (cfg *Config) DatabasePath() string {
	if filepath.IsAbs(cfg.Database.Path) {
		return cfg.Database.Path
	}
	return filepath.Join(cfg.DataDir(), cfg.Database.Path)
}

// LoadConfig reads the file at path on top of cfg.
// An empty path leaves cfg unchanged.
func LoadConfig(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	vip := viper.New()
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		withErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	return nil
}

func withErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
