/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"
	"errors"
	"time"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/model"
	"github.com/orien/stacks/internal/monitor"
	"github.com/orien/stacks/internal/ui"
	"go.uber.org/zap"
)

// OnFailureDelete removes a stack whose creation failed
const OnFailureDelete = "DELETE"

// Deployer defines the interface for stack deployment operations
type Deployer interface {
	Deploy(ctx context.Context, op *model.Operation) error
}

// StackDeployer implements Deployer using AWS CloudFormation
type StackDeployer struct {
	cfnOps  aws.CloudFormationOperations
	monitor *monitor.Monitor
	printer *ui.Printer
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a StackDeployer
type Option func(*StackDeployer)

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(d *StackDeployer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithClock replaces the clock used to record when an operation started
func WithClock(now func() time.Time) Option {
	return func(d *StackDeployer) {
		d.now = now
	}
}

// NewStackDeployer creates a new StackDeployer
func NewStackDeployer(cfnOps aws.CloudFormationOperations, mon *monitor.Monitor, printer *ui.Printer, opts ...Option) *StackDeployer {
	d := &StackDeployer{
		cfnOps:  cfnOps,
		monitor: mon,
		printer: printer,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy creates op's stack when it does not exist and updates it otherwise
func (d *StackDeployer) Deploy(ctx context.Context, op *model.Operation) error {
	exists, err := d.cfnOps.StackExists(ctx, op.StackName)
	if err != nil {
		return apperr.Wrap(apperr.KindStack, err)
	}

	d.logger.Debug("deploying stack",
		zap.String("stack", op.StackName),
		zap.Bool("exists", exists),
		zap.String("template_url", op.TemplateURL()))

	if exists {
		return d.Update(ctx, op.WithKind(model.OperationUpdate))
	}
	return d.Create(ctx, op.WithKind(model.OperationCreate))
}

// Create sends a create request and follows it to completion
func (d *StackDeployer) Create(ctx context.Context, op *model.Operation) error {
	stackID, err := d.cfnOps.CreateStack(ctx, aws.CreateStackInput{
		StackName:                   op.StackName,
		TemplateURL:                 op.TemplateURL(),
		Parameters:                  toAWSParameters(op.Parameters),
		Capabilities:                aws.Capabilities,
		OnFailure:                   OnFailureDelete,
		EnableTerminationProtection: op.Protect,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindStack, err)
	}

	return d.follow(ctx, op, stackID)
}

// Update sends an update request and follows it to completion. A template
// and parameter set matching what is deployed is reported, not failed.
func (d *StackDeployer) Update(ctx context.Context, op *model.Operation) error {
	stackID, err := d.cfnOps.UpdateStack(ctx, aws.UpdateStackInput{
		StackName:    op.StackName,
		TemplateURL:  op.TemplateURL(),
		Parameters:   toAWSParameters(op.Parameters),
		Capabilities: aws.Capabilities,
	})
	if errors.Is(err, aws.ErrNoChanges) {
		d.printer.StackLine(op.Kind.Action(), op.StackName, "No updates are to be performed")
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.KindStack, err)
	}

	return d.follow(ctx, op, stackID)
}

func (d *StackDeployer) follow(ctx context.Context, op *model.Operation, stackID string) error {
	startedAt := d.now()
	d.printer.StackLine("StackId", op.StackName, stackID)
	return d.monitor.Watch(ctx, op, stackID, startedAt)
}

func toAWSParameters(params []model.Parameter) []aws.Parameter {
	out := make([]aws.Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, aws.Parameter{Key: p.Key, Value: p.Value})
	}
	return out
}
