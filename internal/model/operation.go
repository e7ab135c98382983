/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import (
	"fmt"
	"path/filepath"
)

// OperationKind identifies the mutating request an Operation sends
type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationUpdate OperationKind = "update"
	OperationDelete OperationKind = "delete"
)

// Action returns the progress verb printed alongside stack events
func (k OperationKind) Action() string {
	switch k {
	case OperationCreate:
		return "Creating"
	case OperationUpdate:
		return "Updating"
	case OperationDelete:
		return "Deleting"
	default:
		return string(k)
	}
}

// Operation carries everything a single stack operation needs. It is built
// once at command dispatch and passed explicitly through every call.
type Operation struct {
	Kind        OperationKind
	StackName   string
	TemplateKey string
	Parameters  []Parameter
	Protect     bool
	Region      string
	Bucket      string
}

// NewOperation creates an operation for the given stack and local template path.
// The template key is the base name of the path, matching what the uploader writes.
func NewOperation(kind OperationKind, stackName, templatePath, bucket, region string) *Operation {
	op := &Operation{
		Kind:      kind,
		StackName: stackName,
		Region:    region,
		Bucket:    bucket,
	}
	if templatePath != "" {
		op.TemplateKey = filepath.Base(templatePath)
	}
	return op
}

// WithKind returns a copy of the operation with a different kind
func (o *Operation) WithKind(kind OperationKind) *Operation {
	cp := *o
	cp.Kind = kind
	return &cp
}

// TemplateURL returns the S3 URL the control plane reads the template from
func (o *Operation) TemplateURL() string {
	return TemplateURL(o.Bucket, o.Region, o.TemplateKey)
}

// TemplateURL builds a regional virtual-path S3 URL for an object
func TemplateURL(bucket, region, key string) string {
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", region, bucket, key)
}

// DefaultBucketName returns the per-account, per-region template bucket name
func DefaultBucketName(accountID, region string) string {
	return fmt.Sprintf("cf-templates-%s-%s", accountID, region)
}
