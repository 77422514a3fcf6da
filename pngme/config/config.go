package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// DefaultFile is read when no config path is given. It may be absent.
const DefaultFile = "pngme.toml"

type Config struct {
	OutputFile string `toml:"OutputFile"`
	LogLevel   string `toml:"LogLevel"`
	Compress   bool   `toml:"Compress"` // encode only
	NoProgress bool   `toml:"NoProgress"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutputFile: "edited.png",
		LogLevel:   "error",
	}
}

// LoadConfig reads fn over the defaults. An empty fn means DefaultFile,
// which is allowed to be missing; an explicit fn must exist.
func LoadConfig(fn string) (*Config, error) {
	explicit := fn != ""
	if !explicit {
		fn = DefaultFile
	}
	config := Default()
	if _, err := toml.DecodeFile(fn, config); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", fn, err)
	}
	// if any value is empty fill with default
	if config.OutputFile == "" {
		config.OutputFile = Default().OutputFile
	}
	if config.LogLevel == "" {
		config.LogLevel = Default().LogLevel
	}
	return config, nil
}
