/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package delete

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/model"
	"github.com/orien/stacks/internal/monitor"
	"github.com/orien/stacks/internal/prompt"
	"github.com/orien/stacks/internal/ui"
	"go.uber.org/zap"
)

// ConfirmMessage is asked before anything is deleted
const ConfirmMessage = "This is permanent, are you sure?"

// stackResourceType labels the synthetic completion line for a stack
const stackResourceType = "AWS::CloudFormation::Stack"

// Deleter defines the interface for resource deletion operations
type Deleter interface {
	DeleteStack(ctx context.Context, op *model.Operation) error
	DeleteBucket(ctx context.Context, bucket string) error
	DeleteLogGroup(ctx context.Context, name string) error
}

// ResourceDeleter implements Deleter against AWS
type ResourceDeleter struct {
	clientFactory  aws.ClientFactory
	printer        *ui.Printer
	logger         *zap.Logger
	monitorOptions []monitor.Option
	assumeYes      bool
	now            func() time.Time
}

// Option configures a ResourceDeleter
type Option func(*ResourceDeleter)

// WithAssumeYes skips the confirmation prompt
func WithAssumeYes(assumeYes bool) Option {
	return func(d *ResourceDeleter) {
		d.assumeYes = assumeYes
	}
}

// WithMonitorOptions configures the monitor that follows a stack deletion
func WithMonitorOptions(opts ...monitor.Option) Option {
	return func(d *ResourceDeleter) {
		d.monitorOptions = append(d.monitorOptions, opts...)
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(d *ResourceDeleter) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithClock replaces the clock used to record when a deletion started
func WithClock(now func() time.Time) Option {
	return func(d *ResourceDeleter) {
		d.now = now
	}
}

// NewResourceDeleter creates a new ResourceDeleter
func NewResourceDeleter(clientFactory aws.ClientFactory, printer *ui.Printer, opts ...Option) *ResourceDeleter {
	d := &ResourceDeleter{
		clientFactory: clientFactory,
		printer:       printer,
		logger:        zap.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeleteStack deletes op's stack after confirmation and follows the deletion
// until the stack is gone
func (d *ResourceDeleter) DeleteStack(ctx context.Context, op *model.Operation) error {
	cfnOps, err := d.clientFactory.CloudFormation(ctx, op.Region)
	if err != nil {
		return apperr.Wrap(apperr.KindStack, err)
	}

	stack, err := cfnOps.GetStack(ctx, op.StackName)
	if errors.Is(err, aws.ErrStackNotFound) {
		return apperr.Stack("%s does not exist", op.StackName)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindStack, err)
	}

	proceed, err := d.confirm()
	if err != nil || !proceed {
		return err
	}

	if err := cfnOps.DeleteStack(ctx, op.StackName); err != nil {
		return apperr.Wrap(apperr.KindStack, err)
	}
	startedAt := d.now()

	// Events and status of a deleted stack are only reachable by its id.
	opts := append([]monitor.Option{monitor.WithLogger(d.logger)}, d.monitorOptions...)
	mon := monitor.New(cfnOps, d.printer, opts...)
	if err := mon.Watch(ctx, op.WithKind(model.OperationDelete), stack.StackID, startedAt); err != nil {
		return err
	}

	d.printer.StackLine(model.OperationDelete.Action(), op.StackName,
		stackResourceType, op.StackName, d.printer.Styles().RenderStatus(string(aws.StackStatusDeleteComplete)))
	return nil
}

// DeleteBucket deletes an empty template bucket after confirmation
func (d *ResourceDeleter) DeleteBucket(ctx context.Context, bucket string) error {
	storage, err := d.clientFactory.Storage(ctx, "")
	if err != nil {
		return apperr.Wrap(apperr.KindBucket, err)
	}

	exists, err := storage.BucketExists(ctx, bucket)
	if err != nil {
		return apperr.Wrap(apperr.KindBucket, err)
	}
	if !exists {
		return apperr.New(apperr.KindBucket, "%s does not exist", bucket)
	}

	proceed, err := d.confirm()
	if err != nil || !proceed {
		return err
	}

	if err := storage.DeleteBucket(ctx, bucket); err != nil {
		return apperr.Wrap(apperr.KindBucket, err)
	}

	d.printer.StackLine(model.OperationDelete.Action(), bucket, "AWS::S3::Bucket",
		d.printer.Styles().RenderStatus(string(aws.StackStatusDeleteComplete)))
	return nil
}

// DeleteLogGroup deletes a CloudWatch log group after confirmation
func (d *ResourceDeleter) DeleteLogGroup(ctx context.Context, name string) error {
	logs, err := d.clientFactory.Logs(ctx, "")
	if err != nil {
		return apperr.Wrap(apperr.KindLogs, err)
	}

	proceed, err := d.confirm()
	if err != nil || !proceed {
		return err
	}

	if err := logs.DeleteLogGroup(ctx, name); err != nil {
		return apperr.Wrap(apperr.KindLogs, err)
	}

	d.printer.StackLine(model.OperationDelete.Action(), name, "AWS::Logs::LogGroup",
		d.printer.Styles().RenderStatus(string(aws.StackStatusDeleteComplete)))
	return nil
}

// confirm asks the user before a destructive call. A refusal prints a notice
// and reports false with no error.
func (d *ResourceDeleter) confirm() (bool, error) {
	if d.assumeYes {
		return true, nil
	}

	confirmed, err := prompt.Confirm(ConfirmMessage)
	if err != nil {
		return false, fmt.Errorf("failed to get user confirmation: %w", err)
	}
	if !confirmed {
		d.printer.Line("Delete operation canceled")
		return false, nil
	}
	return true, nil
}
