/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/template"
	"github.com/orien/stacks/internal/ui"
	"go.uber.org/zap"
)

// Validator checks templates against CloudFormation
type Validator interface {
	Validate(ctx context.Context, path string, variables map[string]string) error
	ValidateDir(ctx context.Context, dir string, variables map[string]string) error
}

// TemplateValidator implements the Validator interface
type TemplateValidator struct {
	cfnOps    aws.CloudFormationOperations
	printer   *ui.Printer
	processor template.Processor
	logger    *zap.Logger
}

// NewTemplateValidator creates a new validator
func NewTemplateValidator(cfnOps aws.CloudFormationOperations, printer *ui.Printer, logger *zap.Logger) *TemplateValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateValidator{
		cfnOps:    cfnOps,
		printer:   printer,
		processor: template.NewSprigProcessor(),
		logger:    logger,
	}
}

// Validate converts the template at path to JSON and submits it for
// validation, printing the verdict
func (v *TemplateValidator) Validate(ctx context.Context, path string, variables map[string]string) error {
	if err := template.CheckFile(path); err != nil {
		return err
	}
	name := filepath.Base(path)

	content, err := template.Load(path, variables, v.processor)
	if err != nil {
		return err
	}

	body, err := template.ToJSON(content)
	if err != nil {
		return v.invalid(name, err)
	}
	v.logger.Debug("validating template", zap.String("template", path), zap.Int("json_bytes", len(body)))

	summary, err := v.cfnOps.ValidateTemplate(ctx, string(body))
	if err != nil {
		return v.invalid(name, err)
	}

	v.printer.Line(v.printer.Styles().Success.Render("Valid Template!"), name)
	if summary.Description != "" {
		v.printer.Info("Description", summary.Description)
	}
	if len(summary.Parameters) > 0 {
		v.printer.Info("Parameters", strings.Join(summary.Parameters, ", "))
	}
	if len(summary.Capabilities) > 0 {
		v.printer.Info("Capabilities", strings.Join(summary.Capabilities, ", "))
	}
	return nil
}

// ValidateDir validates every YAML template directly inside dir. All are
// checked; the failures are returned together.
func (v *TemplateValidator) ValidateDir(ctx context.Context, dir string, variables map[string]string) error {
	if err := template.CheckDir(dir); err != nil {
		return err
	}
	names, err := template.ListTemplates(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		v.printer.Warning(fmt.Sprintf("No templates found in %s", dir))
		return nil
	}

	var errs []error
	for _, name := range names {
		if err := v.Validate(ctx, filepath.Join(dir, name), variables); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return apperr.Wrap(apperr.KindTemplate, errors.Join(errs...))
	}
	return nil
}

func (v *TemplateValidator) invalid(name string, reason error) error {
	v.printer.Line(v.printer.Styles().Error.Render("Invalid Template!"), name)
	v.printer.Line(reason.Error())
	return apperr.Wrap(apperr.KindTemplate, fmt.Errorf("%s: %w", name, reason))
}
