package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mhersche/isoline/pkg/pipeline"
)

// Config holds persistent CLI preferences, read from
// ~/.config/isoline/config.toml (or $XDG_CONFIG_HOME/isoline/config.toml).
// All fields are optional; missing fields keep their defaults.
type Config struct {
	// LevelCount is the default number of evenly spaced levels.
	LevelCount int `toml:"level_count"`

	// Format is the default artifact format.
	Format string `toml:"format"`

	// Workers is the default number of concurrent level traces.
	Workers int `toml:"workers"`

	// Server holds defaults for the serve command.
	Server ServerConfig `toml:"server"`
}

// ServerConfig holds serve command defaults.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	RedisAddr string `toml:"redis_addr"`
	MongoURI  string `toml:"mongo_uri"`
	MongoDB   string `toml:"mongo_db"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		LevelCount: pipeline.DefaultLevelCount,
		Format:     pipeline.DefaultFormat,
		Workers:    pipeline.DefaultWorkers,
		Server: ServerConfig{
			Addr:    ":8080",
			MongoDB: appName,
		},
	}
}

// configPath returns the config file path using XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file, layering it over the defaults.
// A missing file is not an error; the defaults are returned.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg, err
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key %s in %s", undecoded[0], path)
	}
	return cfg, nil
}
