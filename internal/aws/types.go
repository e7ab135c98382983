/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"strings"
	"time"
)

// StackStatus represents the status of a CloudFormation stack
type StackStatus string

const (
	StackStatusCreateInProgress         StackStatus = "CREATE_IN_PROGRESS"
	StackStatusCreateComplete           StackStatus = "CREATE_COMPLETE"
	StackStatusCreateFailed             StackStatus = "CREATE_FAILED"
	StackStatusDeleteInProgress         StackStatus = "DELETE_IN_PROGRESS"
	StackStatusDeleteComplete           StackStatus = "DELETE_COMPLETE"
	StackStatusDeleteFailed             StackStatus = "DELETE_FAILED"
	StackStatusUpdateInProgress         StackStatus = "UPDATE_IN_PROGRESS"
	StackStatusUpdateComplete           StackStatus = "UPDATE_COMPLETE"
	StackStatusUpdateFailed             StackStatus = "UPDATE_FAILED"
	StackStatusUpdateRollbackInProgress StackStatus = "UPDATE_ROLLBACK_IN_PROGRESS"
	StackStatusUpdateRollbackComplete   StackStatus = "UPDATE_ROLLBACK_COMPLETE"
	StackStatusUpdateRollbackFailed     StackStatus = "UPDATE_ROLLBACK_FAILED"
	StackStatusRollbackInProgress       StackStatus = "ROLLBACK_IN_PROGRESS"
	StackStatusRollbackComplete         StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackFailed           StackStatus = "ROLLBACK_FAILED"
	StackStatusReviewInProgress         StackStatus = "REVIEW_IN_PROGRESS"
)

// ListedStackStatuses are the statuses included in stack listings. Deleted
// stacks are left out.
var ListedStackStatuses = []StackStatus{
	StackStatusCreateComplete,
	StackStatusUpdateRollbackComplete,
	StackStatusUpdateComplete,
	StackStatusDeleteFailed,
	StackStatusDeleteInProgress,
	StackStatusCreateInProgress,
	StackStatusCreateFailed,
	StackStatusRollbackInProgress,
	StackStatusRollbackFailed,
	StackStatusUpdateInProgress,
	StackStatusReviewInProgress,
}

// Capabilities acknowledged on every create and update
var Capabilities = []string{"CAPABILITY_IAM", "CAPABILITY_NAMED_IAM"}

// Stack represents a CloudFormation stack with essential information
type Stack struct {
	StackID     string
	Name        string
	Status      StackStatus
	CreatedTime *time.Time
	UpdatedTime *time.Time
	Description string
	Parameters  map[string]string
	Outputs     map[string]string
	Tags        map[string]string
}

// StackSummary is one entry of a stack listing
type StackSummary struct {
	StackID     string
	Name        string
	Status      StackStatus
	Description string
	CreatedTime *time.Time
	UpdatedTime *time.Time
}

// StackEvent is a single progress event reported for a stack
type StackEvent struct {
	EventId              string
	StackName            string
	LogicalResourceId    string
	PhysicalResourceId   string
	ResourceType         string
	Timestamp            time.Time
	ResourceStatus       string
	ResourceStatusReason string
}

// Export is a named output value published by a stack
type Export struct {
	Name             string
	Value            string
	ExportingStackId string
}

// ExportingStackName returns the stack name segment of the exporting stack ARN
func (e Export) ExportingStackName() string {
	return stackARNSegment(e.ExportingStackId, 1)
}

// ExportingStackUUID returns the unique id segment of the exporting stack ARN
func (e Export) ExportingStackUUID() string {
	return stackARNSegment(e.ExportingStackId, 2)
}

// stackARNSegment splits arn:aws:cloudformation:region:account:stack/name/uuid on "/"
func stackARNSegment(arn string, index int) string {
	parts := strings.Split(arn, "/")
	if index < len(parts) {
		return parts[index]
	}
	return ""
}

// Parameter represents a CloudFormation stack parameter
type Parameter struct {
	Key   string
	Value string
}

// CreateStackInput contains parameters for creating a stack
type CreateStackInput struct {
	StackName                   string
	TemplateURL                 string
	Parameters                  []Parameter
	Capabilities                []string
	OnFailure                   string
	EnableTerminationProtection bool
}

// UpdateStackInput contains parameters for updating a stack
type UpdateStackInput struct {
	StackName    string
	TemplateURL  string
	Parameters   []Parameter
	Capabilities []string
}

// TemplateSummary is what the control plane reports for a valid template
type TemplateSummary struct {
	Description  string
	Parameters   []string
	Capabilities []string
}

// Bucket is an S3 bucket owned by the caller
type Bucket struct {
	Name         string
	CreationDate *time.Time
}

// BucketListing is the result of listing the caller's buckets
type BucketListing struct {
	Owner   string
	Buckets []Bucket
	Err     error
}

// Identity describes the principal behind the active credentials
type Identity struct {
	Account string
	Arn     string
	UserID  string
}

// UserName returns the final path segment of the principal ARN
func (i Identity) UserName() string {
	if idx := strings.LastIndex(i.Arn, "/"); idx >= 0 {
		return i.Arn[idx+1:]
	}
	return i.Arn
}

// Certificate is one ACM certificate summary
type Certificate struct {
	DomainName     string
	CertificateArn string
	Status         string
	NotAfter       *time.Time
}

// CertificateStatuses are the statuses included in certificate listings
var CertificateStatuses = []string{
	"VALIDATION_TIMED_OUT",
	"PENDING_VALIDATION",
	"EXPIRED",
	"INACTIVE",
	"ISSUED",
	"FAILED",
	"REVOKED",
}

// LogGroup is one CloudWatch log group
type LogGroup struct {
	Name            string
	CreationTime    *time.Time
	StoredBytes     int64
	RetentionInDays int32
}
