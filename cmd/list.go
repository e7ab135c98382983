/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/report"
	"github.com/spf13/cobra"
)

func newListCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [stacks|exports|buckets|logs]",
		Short: "List stacks, exports, buckets or log groups",
		Long: `List resources in the account. Without an argument, stacks are listed.

Deleted stacks are not shown. When a listing cannot be fetched completely,
what was fetched is printed followed by a warning.`,
		Args:      usageArgs(cobra.MaximumNArgs(1)),
		ValidArgs: []string{"stacks", "exports", "buckets", "logs"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "stacks"
			if len(args) > 0 {
				kind = args[0]
			}
			switch kind {
			case "stacks", "exports", "buckets", "logs":
			default:
				return apperr.Usage("Invalid [type] %q, must be stacks, exports, buckets or logs", kind)
			}

			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			reporter := report.NewReporter(env.printer, env.logger)

			switch kind {
			case "buckets":
				storage, err := env.factory.Storage(ctx, env.config.Region)
				if err != nil {
					return apperr.Wrap(apperr.KindBucket, err)
				}
				return reporter.Buckets(ctx, storage)
			case "logs":
				logs, err := env.factory.Logs(ctx, env.config.Region)
				if err != nil {
					return apperr.Wrap(apperr.KindLogs, err)
				}
				return reporter.LogGroups(ctx, logs)
			}

			cfnOps, err := env.factory.CloudFormation(ctx, env.config.Region)
			if err != nil {
				return apperr.Wrap(apperr.KindStack, err)
			}
			if kind == "exports" {
				return reporter.Exports(ctx, cfnOps)
			}
			return reporter.Stacks(ctx, cfnOps)
		},
	}
}
