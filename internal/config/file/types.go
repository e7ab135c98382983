/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package file reads configuration from a YAML file.
package file

import (
	"fmt"
	"time"

	"github.com/orien/stacks/internal/config"
)

// Config represents the raw YAML configuration file structure
type Config struct {
	Profile      string            `yaml:"profile"`
	Region       string            `yaml:"region"`
	Bucket       string            `yaml:"bucket"`
	PollInterval string            `yaml:"pollInterval"`
	MaxWait      string            `yaml:"maxWait"`
	Stacks       map[string]*Stack `yaml:"stacks"`
}

// Stack represents per-stack settings as they appear in YAML
type Stack struct {
	Parameters map[string]string `yaml:"parameters"`
	Protect    bool              `yaml:"protect"`
}

// resolve converts the raw file into a config.Config, filling unset values
// from defaults
func (c *Config) resolve() (*config.Config, error) {
	cfg := config.Defaults()

	if c.Profile != "" {
		cfg.Profile = c.Profile
	}
	if c.Region != "" {
		cfg.Region = c.Region
	}
	cfg.Bucket = c.Bucket

	interval, err := parseDuration("pollInterval", c.PollInterval, cfg.PollInterval)
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = interval

	maxWait, err := parseDuration("maxWait", c.MaxWait, cfg.MaxWait)
	if err != nil {
		return nil, err
	}
	cfg.MaxWait = maxWait

	for name, stack := range c.Stacks {
		resolved := &config.StackConfig{Name: name, Parameters: make(map[string]string)}
		if stack != nil {
			for k, v := range stack.Parameters {
				resolved.Parameters[k] = v
			}
			resolved.Protect = stack.Protect
		}
		cfg.Stacks[name] = resolved
	}

	return cfg, nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}
