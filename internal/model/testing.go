/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

// NewTestOperation creates an Operation with default test values
func NewTestOperation(kind OperationKind, stackName string) *Operation {
	return &Operation{
		Kind:        kind,
		StackName:   stackName,
		TemplateKey: stackName + ".yaml",
		Parameters:  []Parameter{},
		Region:      "us-west-2",
		Bucket:      "cf-templates-123456789012-us-west-2",
	}
}
