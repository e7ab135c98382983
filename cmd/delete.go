/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/delete"
	"github.com/orien/stacks/internal/model"
	"github.com/orien/stacks/internal/monitor"
	"github.com/spf13/cobra"
)

// deleter can be injected for testing
var deleter delete.Deleter

// SetDeleter allows injection of a deleter (for testing)
func SetDeleter(d delete.Deleter) {
	deleter = d
}

func getDeleter(env *environment, assumeYes bool) delete.Deleter {
	if deleter != nil {
		return deleter
	}

	return delete.NewResourceDeleter(env.factory, env.printer,
		delete.WithAssumeYes(assumeYes),
		delete.WithLogger(env.logger),
		delete.WithMonitorOptions(
			monitor.WithInterval(env.config.PollInterval),
			monitor.WithMaxWait(env.config.MaxWait),
		))
}

func newDeleteCmd(global *globalOptions) *cobra.Command {
	var assumeYes bool

	deleteCmd := &cobra.Command{
		Use:   "delete <stack|bucket|logs> <name>",
		Short: "Delete a stack, template bucket or log group",
		Long: `Delete a CloudFormation stack, an empty S3 bucket or a CloudWatch log group.

You are asked to confirm before anything is deleted. Stack deletions are
followed until CloudFormation reports the stack gone.

Examples:
  stacks delete stack network
  stacks delete bucket cf-templates-123456789012-us-west-2
  stacks delete logs /aws/lambda/handler --yes`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return apperr.Usage("Both [type] and [name] arguments must be supplied")
			}
			return nil
		},
		ValidArgs: []string{"stack", "bucket", "logs"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, name := args[0], args[1]
			if kind != "stack" && kind != "bucket" && kind != "logs" {
				return apperr.Usage("Invalid [type] %q, must be stack, bucket or logs", kind)
			}

			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			d := getDeleter(env, assumeYes)

			switch kind {
			case "bucket":
				return d.DeleteBucket(ctx, name)
			case "logs":
				return d.DeleteLogGroup(ctx, name)
			default:
				op := model.NewOperation(model.OperationDelete, name, "", env.config.Bucket, env.config.Region)
				return d.DeleteStack(ctx, op)
			}
		},
	}

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	return deleteCmd
}
