/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"
	"errors"
	"sort"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/ui"
)

// Describer defines the interface for printing detailed stack information
type Describer interface {
	DescribeStack(ctx context.Context, stackName string) error
}

// StackDescriber implements the Describer interface using AWS CloudFormation operations
type StackDescriber struct {
	cfnOps  aws.CloudFormationOperations
	printer *ui.Printer
}

// NewStackDescriber creates a new describer
func NewStackDescriber(cfnOps aws.CloudFormationOperations, printer *ui.Printer) *StackDescriber {
	return &StackDescriber{
		cfnOps:  cfnOps,
		printer: printer,
	}
}

// DescribeStack prints a stack's status, parameters, outputs and tags
func (d *StackDescriber) DescribeStack(ctx context.Context, stackName string) error {
	stack, err := d.cfnOps.GetStack(ctx, stackName)
	if errors.Is(err, aws.ErrStackNotFound) {
		return apperr.Stack("%s does not exist", stackName)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindStack, err)
	}

	d.printer.Heading("StackName", stack.Name)
	d.printer.Info("StackId", stack.StackID)
	if stack.Description != "" {
		d.printer.Info("Description", stack.Description)
	}
	d.printer.Info("StackStatus", d.printer.Styles().RenderStatus(string(stack.Status)))
	d.printer.Info("CreationTime", ui.FormatTime(stack.CreatedTime))
	if stack.UpdatedTime != nil {
		d.printer.Info("LastUpdatedTime", ui.FormatTime(stack.UpdatedTime))
	}

	d.section("Parameters", stack.Parameters)
	d.section("Outputs", stack.Outputs)
	d.section("Tags", stack.Tags)
	return nil
}

// section prints a titled block of key/value pairs sorted by key
func (d *StackDescriber) section(title string, values map[string]string) {
	if len(values) == 0 {
		return
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	d.printer.Blank()
	d.printer.Info(title, "")
	for _, key := range keys {
		d.printer.Info("  "+key, values[key])
	}
}
