/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import (
	"bytes"
	"fmt"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/orien/stacks/internal/apperr"
)

// Processor renders a template body with user-supplied variables
type Processor interface {
	Process(content string, variables map[string]any) (string, error)
}

// SprigProcessor implements Processor using Go's text/template with Sprig functions
type SprigProcessor struct{}

// NewSprigProcessor creates a template processor
func NewSprigProcessor() *SprigProcessor {
	return &SprigProcessor{}
}

// Process renders content with variables. Missing variables are an error
// rather than rendering as "<no value>".
func (p *SprigProcessor) Process(content string, variables map[string]any) (string, error) {
	tmpl, err := texttemplate.New("cloudformation").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// Load reads the template at path. When variables are given the body is
// rendered with processor first; otherwise it is returned untouched, so
// templates using CloudFormation's own {{resolve:...}} references pass through.
func Load(path string, variables map[string]string, processor Processor) ([]byte, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(variables) == 0 {
		return content, nil
	}

	if processor == nil {
		processor = NewSprigProcessor()
	}
	vars := make(map[string]any, len(variables))
	for k, v := range variables {
		vars[k] = v
	}

	rendered, err := processor.Process(string(content), vars)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTemplate, fmt.Errorf("%s: %w", path, err))
	}
	return []byte(rendered), nil
}
