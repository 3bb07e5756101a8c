package cli

import (
	"fmt"

	"github.com/simplets-git/simplets/internal/config"
)

// RunOptions contains the flags shared by the commands.
type RunOptions struct {
	ConfigPath string
	Language   string
	Theme      string
	Username   string
	NoBoot     bool
	Plain      bool
	JSON       bool
	Debug      bool
	LogFile    string
}

// LoadConfig reads the configuration and applies the flags on top.
func LoadConfig(opts RunOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if opts.Language != "" {
		cfg.Language = opts.Language
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.Username != "" {
		cfg.Username = opts.Username
	}
	if opts.NoBoot || opts.JSON {
		cfg.Boot.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
