package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ConvertConfig holds the defaults applied to every conversion run.
// Command-line flags override these.
type ConvertConfig struct {
	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log_level"`
	Color    bool   `mapstructure:"color"`
}

// Config is the root of the lcovify configuration file.
type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Format:   "xccov",
			LogLevel: "info",
			Color:    true,
		},
	}
}

// Load reads lcovify.yaml from the working directory, a configs
// subdirectory, or $HOME/.config/lcovify, and merges it over the
// compiled-in defaults. A missing file is not an error; the tool must
// run with zero setup. A file that exists but cannot be parsed is.
func Load() (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("lcovify")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("$HOME/.config/lcovify")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	return cfg, nil
}
