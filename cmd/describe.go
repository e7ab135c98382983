/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/describe"
	"github.com/spf13/cobra"
)

// describer can be injected for testing
var describer describe.Describer

// SetDescriber allows injection of a describer (for testing)
func SetDescriber(d describe.Describer) {
	describer = d
}

func getDescriber(ctx context.Context, env *environment) (describe.Describer, error) {
	if describer != nil {
		return describer, nil
	}

	cfnOps, err := env.factory.CloudFormation(ctx, env.config.Region)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStack, err)
	}
	return describe.NewStackDescriber(cfnOps, env.printer), nil
}

func newDescribeCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <stack>",
		Short: "Show a stack's status, parameters, outputs and tags",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}

			d, err := getDescriber(cmd.Context(), env)
			if err != nil {
				return err
			}
			return d.DescribeStack(cmd.Context(), args[0])
		},
	}
}
