/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/orien/stacks/internal/config"
	"gopkg.in/yaml.v3"
)

// Provider implements config.ConfigProvider by reading from a YAML file
type Provider struct {
	filename string
	required bool
}

// NewProvider creates a file-based ConfigProvider. When the file does not
// exist defaults are used, unless required is set.
func NewProvider(filename string, required bool) *Provider {
	if filename == "" {
		filename = config.DefaultFilename
	}
	return &Provider{
		filename: filename,
		required: required,
	}
}

// LoadConfig reads and resolves the configuration file
func (fp *Provider) LoadConfig(ctx context.Context) (*config.Config, error) {
	data, err := os.ReadFile(fp.filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !fp.required {
			return config.Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", fp.filename, err)
	}

	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", fp.filename, err)
	}

	cfg, err := raw.resolve()
	if err != nil {
		return nil, fmt.Errorf("config file '%s': %w", fp.filename, err)
	}
	return cfg, nil
}

// Filename returns the path the provider reads
func (fp *Provider) Filename() string {
	return fp.filename
}
