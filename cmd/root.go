/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"io"

	"github.com/charmbracelet/fang"
	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/config"
	"github.com/orien/stacks/internal/ui"
	"github.com/orien/stacks/internal/version"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	profile    string
	region     string
	bucket     string
	configFile string
	verbose    bool
}

// RootCommand builds the command tree
func RootCommand() *cobra.Command {
	return newRootCmd()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "stacks",
		Short: "Create, update and delete AWS CloudFormation stacks from the command line",
		Long: `Stacks deploys CloudFormation templates and follows each operation to the end:

• Uploads templates to a per-account S3 bucket
• Creates or updates a stack depending on whether it exists
• Streams stack events until the operation finishes
• Lists stacks, exports, buckets, log groups and certificates

Every failure exits with a code identifying its kind, so scripts can branch on it.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(version.Info() + "\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.Wrap(apperr.KindUsage, err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.profile, "profile", "p", "", "AWS profile (overrides config)")
	flags.StringVarP(&opts.region, "region", "r", "", "AWS region (overrides config)")
	flags.StringVarP(&opts.bucket, "bucket", "b", "", "template bucket (default cf-templates-<account>-<region>)")
	flags.StringVarP(&opts.configFile, "config", "c", config.DefaultFilename, "configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newDeployCmd(opts),
		newDeleteCmd(opts),
		newListCmd(opts),
		newDescribeCmd(opts),
		newUploadCmd(opts),
		newAccountCmd(opts),
		newValidateCmd(opts),
		newCertsCmd(opts),
	)
	return rootCmd
}

// ErrorHandler prints a command failure as a timestamped error line
func ErrorHandler(w io.Writer, _ fang.Styles, err error) {
	ui.NewPrinter(w, ui.NewStyles(ui.ShouldUseColour())).Error(err)
}

// usageArgs classifies argument validation failures as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return apperr.Wrap(apperr.KindUsage, validate(cmd, args))
	}
}
