/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"os"

	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/config"
	"github.com/orien/stacks/internal/config/file"
	"github.com/orien/stacks/internal/logging"
	"github.com/orien/stacks/internal/ui"
	"github.com/orien/stacks/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// clientFactory can be injected for testing
	clientFactory aws.ClientFactory

	// configProvider can be injected for testing
	configProvider config.ConfigProvider
)

// SetClientFactory allows injection of an AWS client factory (for testing)
func SetClientFactory(f aws.ClientFactory) {
	clientFactory = f
}

// SetConfigProvider allows injection of a configuration provider (for testing)
func SetConfigProvider(p config.ConfigProvider) {
	configProvider = p
}

// environment is what a command needs to talk to AWS and the user. It is
// built once per invocation.
type environment struct {
	config  *config.Config
	factory aws.ClientFactory
	printer *ui.Printer
	logger  *zap.Logger
}

// newEnvironment resolves configuration, prints the profile and region in
// use and prepares the AWS client factory
func newEnvironment(cmd *cobra.Command, opts *globalOptions) (*environment, error) {
	ctx := cmd.Context()

	provider := configProvider
	if provider == nil {
		provider = file.NewProvider(opts.configFile, cmd.Flags().Changed("config"))
	}
	cfg, err := provider.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Apply(config.Overrides{
		Profile: opts.profile,
		Region:  opts.region,
		Bucket:  opts.bucket,
	})

	out := cmd.OutOrStdout()
	colour := out == os.Stdout && ui.ShouldUseColour()
	printer := ui.NewPrinter(out, ui.NewStyles(colour))
	logger := logging.NewLogger(logging.Options{
		Verbose: opts.verbose,
		Colour:  colour,
		Output:  cmd.ErrOrStderr(),
	})

	printer.Info("AWS Profile", cfg.Profile)
	printer.Info("AWS Region", cfg.Region)

	factory := clientFactory
	if factory == nil {
		f, err := aws.NewClientFactory(ctx, aws.Config{
			Region:  cfg.Region,
			Profile: cfg.Profile,
			AppID:   version.AppID(),
		})
		if err != nil {
			return nil, err
		}
		factory = f
	}

	logger.Debug("environment ready",
		zap.String("profile", cfg.Profile),
		zap.String("region", cfg.Region),
		zap.String("bucket", cfg.Bucket),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Duration("max_wait", cfg.MaxWait))

	return &environment{
		config:  cfg,
		factory: factory,
		printer: printer,
		logger:  logger,
	}, nil
}
