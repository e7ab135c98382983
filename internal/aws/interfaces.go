/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/orien/stacks/internal/model"
)

// CloudFormationClient defines the interface for CloudFormation client operations
// This allows for easier testing with mock implementations
type CloudFormationClient interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackEvents(ctx context.Context, params *cloudformation.DescribeStackEventsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error)
	ListStacks(ctx context.Context, params *cloudformation.ListStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error)
	ListExports(ctx context.Context, params *cloudformation.ListExportsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListExportsOutput, error)
	ValidateTemplate(ctx context.Context, params *cloudformation.ValidateTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error)
}

// S3Client is the subset of the S3 API used for template buckets
type S3Client interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
}

// ObjectUploader writes a single object, splitting large bodies into parts
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// STSClient is the subset of the STS API used to identify the caller
type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// ACMClient is the subset of the ACM API used for certificate listings
type ACMClient interface {
	ListCertificates(ctx context.Context, params *acm.ListCertificatesInput, optFns ...func(*acm.Options)) (*acm.ListCertificatesOutput, error)
}

// LogsClient is the subset of the CloudWatch Logs API used for log groups
type LogsClient interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DeleteLogGroup(ctx context.Context, params *cloudwatchlogs.DeleteLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error)
}

// Ensure that the actual service clients implement our interfaces
var (
	_ CloudFormationClient = (*cloudformation.Client)(nil)
	_ S3Client             = (*s3.Client)(nil)
	_ ObjectUploader       = (*manager.Uploader)(nil)
	_ STSClient            = (*sts.Client)(nil)
	_ ACMClient            = (*acm.Client)(nil)
	_ LogsClient           = (*cloudwatchlogs.Client)(nil)
)

// Ensure that the default operations implement their interfaces
var (
	_ CloudFormationOperations = (*DefaultCloudFormationOperations)(nil)
	_ StorageOperations        = (*DefaultStorageOperations)(nil)
	_ IdentityOperations       = (*DefaultIdentityOperations)(nil)
	_ CertificateOperations    = (*DefaultCertificateOperations)(nil)
	_ LogOperations            = (*DefaultLogOperations)(nil)
	_ ClientFactory            = (*DefaultClientFactory)(nil)
)

// CloudFormationOperations defines the interface for CloudFormation operations
type CloudFormationOperations interface {
	CreateStack(ctx context.Context, input CreateStackInput) (string, error)
	UpdateStack(ctx context.Context, input UpdateStackInput) (string, error)
	DeleteStack(ctx context.Context, stackName string) error
	GetStack(ctx context.Context, stackName string) (*Stack, error)
	StackExists(ctx context.Context, stackName string) (bool, error)
	DescribeStackEvents(ctx context.Context, stackName string) Page[StackEvent]
	WaitForStackOperation(ctx context.Context, stackName string, kind model.OperationKind, maxWait time.Duration) error
	ListStacks(ctx context.Context) Page[StackSummary]
	ListExports(ctx context.Context) Page[Export]
	ValidateTemplate(ctx context.Context, templateBody string) (*TemplateSummary, error)
}

// StorageOperations defines the interface for template bucket operations
type StorageOperations interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket, region string) error
	PutObject(ctx context.Context, bucket, key string, body io.Reader) error
	ListBuckets(ctx context.Context) (*BucketListing, error)
	DeleteBucket(ctx context.Context, bucket string) error
}

// IdentityOperations resolves the account behind the active credentials
type IdentityOperations interface {
	GetCallerIdentity(ctx context.Context) (*Identity, error)
}

// CertificateOperations lists ACM certificates
type CertificateOperations interface {
	ListCertificates(ctx context.Context) Page[Certificate]
}

// LogOperations lists and deletes CloudWatch log groups
type LogOperations interface {
	ListLogGroups(ctx context.Context) Page[LogGroup]
	DeleteLogGroup(ctx context.Context, name string) error
}
