package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/scigolib/sdf"
	"github.com/sirupsen/logrus"
)

// config controls dataset assembly for all subcommands.
type config struct {
	// DropVariables lists block names removed before assembly. Every
	// name must exist in the file being read.
	DropVariables []string `toml:"drop_variables"`

	// LogLevel sets the logrus level by name, such as "debug" or
	// "warn". Empty keeps the default.
	LogLevel string `toml:"log_level"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		logrus.SetLevel(level)
	}
	return cfg, nil
}

// options translates the configuration into dataset assembly options.
func (c *config) options() []sdf.Option {
	var opts []sdf.Option
	if len(c.DropVariables) > 0 {
		opts = append(opts, sdf.WithDropVariables(c.DropVariables...))
	}
	return opts
}
