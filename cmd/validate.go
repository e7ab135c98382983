/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/validate"
	"github.com/spf13/cobra"
)

// validator can be injected for testing
var validator validate.Validator

// SetValidator allows injection of a validator (for testing)
func SetValidator(v validate.Validator) {
	validator = v
}

func getValidator(ctx context.Context, env *environment) (validate.Validator, error) {
	if validator != nil {
		return validator, nil
	}

	cfnOps, err := env.factory.CloudFormation(ctx, env.config.Region)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStack, err)
	}
	return validate.NewTemplateValidator(cfnOps, env.printer, env.logger), nil
}

func newValidateCmd(global *globalOptions) *cobra.Command {
	var (
		dir       bool
		variables map[string]string
	)

	validateCmd := &cobra.Command{
		Use:   "validate <template>",
		Short: "Validate a template with CloudFormation",
		Long: `Convert a template to JSON, expanding short-form intrinsic functions such as
!Ref and !GetAtt, and submit it to CloudFormation for validation.

Examples:
  stacks validate network.yaml
  stacks validate templates --dir
  stacks validate app.yaml --var env=prod`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			v, err := getValidator(ctx, env)
			if err != nil {
				return err
			}

			if dir {
				return v.ValidateDir(ctx, args[0], variables)
			}
			return v.Validate(ctx, args[0], variables)
		},
	}

	validateCmd.Flags().BoolVar(&dir, "dir", false, "validate every template in a directory")
	validateCmd.Flags().StringToStringVar(&variables, "var", nil, "template variable as key=value, enables template rendering")

	return validateCmd
}
