/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"
	"sort"
	"time"

	"github.com/orien/stacks/internal/model"
)

const (
	// DefaultFilename is the configuration file read from the working directory
	DefaultFilename = "stacks.yaml"

	// DefaultProfile is the shared credentials profile used when none is given
	DefaultProfile = "default"

	// DefaultRegion is the region used when none is given
	DefaultRegion = "us-west-2"

	DefaultPollInterval = 5 * time.Second
	DefaultMaxWait      = time.Hour
)

// ConfigProvider defines the interface for loading configuration
type ConfigProvider interface {
	// LoadConfig loads the configuration, applying defaults for anything unset
	LoadConfig(ctx context.Context) (*Config, error)
}

// Config represents the resolved configuration for one invocation
type Config struct {
	Profile      string
	Region       string
	Bucket       string
	PollInterval time.Duration
	MaxWait      time.Duration
	Stacks       map[string]*StackConfig
}

// StackConfig holds per-stack deployment settings
type StackConfig struct {
	Name       string
	Parameters map[string]string
	Protect    bool
}

// Overrides are values given on the command line. Empty fields leave the
// configured value in place.
type Overrides struct {
	Profile string
	Region  string
	Bucket  string
}

// Defaults returns the configuration used when no file is present
func Defaults() *Config {
	return &Config{
		Profile:      DefaultProfile,
		Region:       DefaultRegion,
		PollInterval: DefaultPollInterval,
		MaxWait:      DefaultMaxWait,
		Stacks:       make(map[string]*StackConfig),
	}
}

// Apply overlays command-line values onto the configuration
func (c *Config) Apply(o Overrides) *Config {
	if o.Profile != "" {
		c.Profile = o.Profile
	}
	if o.Region != "" {
		c.Region = o.Region
	}
	if o.Bucket != "" {
		c.Bucket = o.Bucket
	}
	return c
}

// Stack returns the settings for a stack, or nil when it has none
func (c *Config) Stack(name string) *StackConfig {
	if c.Stacks == nil {
		return nil
	}
	return c.Stacks[name]
}

// ParameterList returns the stack's configured parameters ordered by key
func (s *StackConfig) ParameterList() []model.Parameter {
	if s == nil || len(s.Parameters) == 0 {
		return []model.Parameter{}
	}

	keys := make([]string, 0, len(s.Parameters))
	for k := range s.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make([]model.Parameter, 0, len(keys))
	for _, k := range keys {
		params = append(params, model.Parameter{Key: k, Value: s.Parameters[k]})
	}
	return params
}
