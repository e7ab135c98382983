/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"strconv"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/deploy"
	"github.com/orien/stacks/internal/model"
	"github.com/orien/stacks/internal/monitor"
	"github.com/orien/stacks/internal/template"
	"github.com/orien/stacks/internal/upload"
	"github.com/spf13/cobra"
)

// deployer can be injected for testing
var deployer deploy.Deployer

// SetDeployer allows injection of a deployer (for testing)
func SetDeployer(d deploy.Deployer) {
	deployer = d
}

// getDeployer returns the injected deployer, or one following the operation
// with a monitor configured from env
func getDeployer(ctx context.Context, env *environment) (deploy.Deployer, error) {
	if deployer != nil {
		return deployer, nil
	}

	cfnOps, err := env.factory.CloudFormation(ctx, env.config.Region)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStack, err)
	}
	mon := monitor.New(cfnOps, env.printer,
		monitor.WithInterval(env.config.PollInterval),
		monitor.WithMaxWait(env.config.MaxWait),
		monitor.WithLogger(env.logger))

	return deploy.NewStackDeployer(cfnOps, mon, env.printer, deploy.WithLogger(env.logger)), nil
}

type deployOptions struct {
	params    string
	paramsSet bool
	protect   bool
	variables map[string]string
}

func newDeployCmd(global *globalOptions) *cobra.Command {
	opts := &deployOptions{}

	deployCmd := &cobra.Command{
		Use:   "deploy <template> [stack-name]",
		Short: "Create or update a stack from a template",
		Long: `Upload a template and create the stack, or update it when it already exists.

The stack name defaults to the template file name without its extension.
Progress events are printed until CloudFormation reports the operation finished.

Examples:
  stacks deploy network.yaml                       # Deploy stack "network"
  stacks deploy network.yaml vpc-prod              # Deploy under another name
  stacks deploy app.yaml --params Env=prod,Size=large
  stacks deploy app.yaml --var env=prod            # Render {{ .env }} before upload
  stacks deploy db.yaml --protect                  # Enable termination protection on create`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}

			stackName := ""
			if len(args) > 1 {
				stackName = args[1]
			}
			opts.paramsSet = cmd.Flags().Changed("params")
			return runDeploy(cmd.Context(), env, args[0], stackName, opts)
		},
	}

	deployCmd.Flags().StringVar(&opts.params, "params", "", "stack parameters as Key=Value,Key2=Value2 (overrides config)")
	deployCmd.Flags().BoolVar(&opts.protect, "protect", false, "enable termination protection when creating the stack")
	deployCmd.Flags().StringToStringVar(&opts.variables, "var", nil, "template variable as key=value, enables template rendering")

	return deployCmd
}

func runDeploy(ctx context.Context, env *environment, templatePath, stackName string, opts *deployOptions) error {
	if err := template.CheckFile(templatePath); err != nil {
		return err
	}
	if stackName == "" {
		stackName = template.StackName(templatePath)
	}
	if stackName == "" {
		return apperr.Stack("a stack name is required")
	}

	cfg := env.config
	stackConfig := cfg.Stack(stackName)

	// --params replaces the configured parameters entirely
	params := stackConfig.ParameterList()
	if opts.paramsSet {
		params = model.ParseParameters(opts.params)
	}
	protect := opts.protect || (stackConfig != nil && stackConfig.Protect)

	identity, err := env.factory.Identity(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindAccount, err)
	}
	bucket, err := upload.ResolveBucket(ctx, identity, cfg.Bucket, cfg.Region)
	if err != nil {
		return err
	}

	op := model.NewOperation(model.OperationCreate, stackName, templatePath, bucket, cfg.Region)
	op.Parameters = params
	op.Protect = protect

	env.printer.Info("Stack Parameters", model.FormatParameters(op.Parameters))
	env.printer.Info("Template", templatePath)
	env.printer.Info("Termination Protection", strconv.FormatBool(op.Protect))
	env.printer.Info("Stack Name", op.StackName)
	env.printer.Info("Bucket", op.Bucket)

	body, err := template.Load(templatePath, opts.variables, nil)
	if err != nil {
		return err
	}

	u, err := getUploader(ctx, env)
	if err != nil {
		return err
	}
	if err := u.EnsureBucket(ctx, op.Bucket); err != nil {
		return err
	}
	if err := u.UploadBody(ctx, op.Bucket, op.TemplateKey, body); err != nil {
		return err
	}

	d, err := getDeployer(ctx, env)
	if err != nil {
		return err
	}
	return d.Deploy(ctx, op)
}
