package server

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/realchain/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// ConfigFile is the name of the daemon configuration inside of the home
// directory.
const ConfigFile = "config.toml"

// Config holds the daemon settings that are not part of the chain state.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Metrics is the address serving prometheus metrics. Empty disables
	// the endpoint.
	Metrics string `toml:"metrics"`
	// Debug returns full error messages and stack traces in responses.
	Debug bool      `toml:"debug"`
	Log   LogConfig `toml:"log"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	// Level is one of debug, info, error or none.
	Level string `toml:"level"`
	// File if set receives all logs instead of stdout. The file is
	// rotated once it reaches MaxSizeMB.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// DefaultConfig returns the configuration written by the init command.
func DefaultConfig() Config {
	return Config{
		Bind:    "tcp://localhost:46658",
		Metrics: "localhost:9102",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
	}
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if c.Bind == "" {
		return errors.Wrap(errors.ErrEmpty, "bind")
	}
	if _, err := log.AllowLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.Wrap(errors.ErrInput, "log rotation values cannot be negative")
	}
	return nil
}

// LoadConfig reads the configuration from the home directory. Values not
// present in the file keep their defaults. A missing file results in the
// default configuration.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(home, ConfigFile)
	if !fileExists(path) {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "cannot decode %s: %s", path, err)
	}
	if keys := meta.Undecoded(); len(keys) != 0 {
		return cfg, errors.Wrapf(errors.ErrInput, "unknown configuration key %q", keys[0].String())
	}
	return cfg, cfg.Validate()
}

// WriteConfig stores the configuration in the home directory, replacing
// any existing file.
func WriteConfig(home string, cfg Config) error {
	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	f, err := os.OpenFile(filepath.Join(home, ConfigFile), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// NewLogger returns a logger filtered by the configured level. Output goes
// to stdout unless a log file is configured.
func NewLogger(cfg LogConfig, stdout io.Writer) (log.Logger, error) {
	allowed, err := log.AllowLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	out := stdout
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	return log.NewFilter(logger, allowed), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
