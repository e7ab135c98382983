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
	"github.com/stretchr/testify/mock"
)

// MockClientFactory implements ClientFactory for testing
type MockClientFactory struct {
	mock.Mock
}

func (m *MockClientFactory) CloudFormation(ctx context.Context, region string) (CloudFormationOperations, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CloudFormationOperations), args.Error(1)
}

func (m *MockClientFactory) Storage(ctx context.Context, region string) (StorageOperations, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(StorageOperations), args.Error(1)
}

func (m *MockClientFactory) Identity(ctx context.Context) (IdentityOperations, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(IdentityOperations), args.Error(1)
}

func (m *MockClientFactory) Certificates(ctx context.Context) (CertificateOperations, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(CertificateOperations), args.Error(1)
}

func (m *MockClientFactory) Logs(ctx context.Context, region string) (LogOperations, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(LogOperations), args.Error(1)
}

// MockCloudFormationOperations implements CloudFormationOperations for testing
type MockCloudFormationOperations struct {
	mock.Mock
}

func (m *MockCloudFormationOperations) CreateStack(ctx context.Context, input CreateStackInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockCloudFormationOperations) UpdateStack(ctx context.Context, input UpdateStackInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockCloudFormationOperations) DeleteStack(ctx context.Context, stackName string) error {
	args := m.Called(ctx, stackName)
	return args.Error(0)
}

func (m *MockCloudFormationOperations) GetStack(ctx context.Context, stackName string) (*Stack, error) {
	args := m.Called(ctx, stackName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stack), args.Error(1)
}

func (m *MockCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	args := m.Called(ctx, stackName)
	return args.Bool(0), args.Error(1)
}

func (m *MockCloudFormationOperations) DescribeStackEvents(ctx context.Context, stackName string) Page[StackEvent] {
	args := m.Called(ctx, stackName)
	return args.Get(0).(Page[StackEvent])
}

func (m *MockCloudFormationOperations) WaitForStackOperation(ctx context.Context, stackName string, kind model.OperationKind, maxWait time.Duration) error {
	args := m.Called(ctx, stackName, kind, maxWait)
	return args.Error(0)
}

func (m *MockCloudFormationOperations) ListStacks(ctx context.Context) Page[StackSummary] {
	args := m.Called(ctx)
	return args.Get(0).(Page[StackSummary])
}

func (m *MockCloudFormationOperations) ListExports(ctx context.Context) Page[Export] {
	args := m.Called(ctx)
	return args.Get(0).(Page[Export])
}

func (m *MockCloudFormationOperations) ValidateTemplate(ctx context.Context, templateBody string) (*TemplateSummary, error) {
	args := m.Called(ctx, templateBody)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TemplateSummary), args.Error(1)
}

// MockStorageOperations implements StorageOperations for testing
type MockStorageOperations struct {
	mock.Mock
}

func (m *MockStorageOperations) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorageOperations) CreateBucket(ctx context.Context, bucket, region string) error {
	args := m.Called(ctx, bucket, region)
	return args.Error(0)
}

// PutObject drains body before recording the call so tests can match on content.
func (m *MockStorageOperations) PutObject(ctx context.Context, bucket, key string, body io.Reader) error {
	content, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	args := m.Called(ctx, bucket, key, string(content))
	return args.Error(0)
}

func (m *MockStorageOperations) ListBuckets(ctx context.Context) (*BucketListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BucketListing), args.Error(1)
}

func (m *MockStorageOperations) DeleteBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

// MockIdentityOperations implements IdentityOperations for testing
type MockIdentityOperations struct {
	mock.Mock
}

func (m *MockIdentityOperations) GetCallerIdentity(ctx context.Context) (*Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

// MockCertificateOperations implements CertificateOperations for testing
type MockCertificateOperations struct {
	mock.Mock
}

func (m *MockCertificateOperations) ListCertificates(ctx context.Context) Page[Certificate] {
	args := m.Called(ctx)
	return args.Get(0).(Page[Certificate])
}

// MockLogOperations implements LogOperations for testing
type MockLogOperations struct {
	mock.Mock
}

func (m *MockLogOperations) ListLogGroups(ctx context.Context) Page[LogGroup] {
	args := m.Called(ctx)
	return args.Get(0).(Page[LogGroup])
}

func (m *MockLogOperations) DeleteLogGroup(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockCloudFormationClient implements the AWS CloudFormation service client interface for testing
type MockCloudFormationClient struct {
	mock.Mock
}

func (m *MockCloudFormationClient) CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.CreateStackOutput), args.Error(1)
}

func (m *MockCloudFormationClient) UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.UpdateStackOutput), args.Error(1)
}

func (m *MockCloudFormationClient) DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.DeleteStackOutput), args.Error(1)
}

func (m *MockCloudFormationClient) DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.DescribeStacksOutput), args.Error(1)
}

func (m *MockCloudFormationClient) DescribeStackEvents(ctx context.Context, params *cloudformation.DescribeStackEventsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.DescribeStackEventsOutput), args.Error(1)
}

func (m *MockCloudFormationClient) ListStacks(ctx context.Context, params *cloudformation.ListStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.ListStacksOutput), args.Error(1)
}

func (m *MockCloudFormationClient) ListExports(ctx context.Context, params *cloudformation.ListExportsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListExportsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.ListExportsOutput), args.Error(1)
}

func (m *MockCloudFormationClient) ValidateTemplate(ctx context.Context, params *cloudformation.ValidateTemplateInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudformation.ValidateTemplateOutput), args.Error(1)
}

// MockS3Client implements S3Client for testing
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadBucketOutput), args.Error(1)
}

func (m *MockS3Client) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.CreateBucketOutput), args.Error(1)
}

func (m *MockS3Client) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListBucketsOutput), args.Error(1)
}

func (m *MockS3Client) DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteBucketOutput), args.Error(1)
}

// MockObjectUploader implements ObjectUploader for testing
type MockObjectUploader struct {
	mock.Mock
}

func (m *MockObjectUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manager.UploadOutput), args.Error(1)
}

// MockSTSClient implements STSClient for testing
type MockSTSClient struct {
	mock.Mock
}

func (m *MockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sts.GetCallerIdentityOutput), args.Error(1)
}

// MockACMClient implements ACMClient for testing
type MockACMClient struct {
	mock.Mock
}

func (m *MockACMClient) ListCertificates(ctx context.Context, params *acm.ListCertificatesInput, optFns ...func(*acm.Options)) (*acm.ListCertificatesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*acm.ListCertificatesOutput), args.Error(1)
}

// MockLogsClient implements LogsClient for testing
type MockLogsClient struct {
	mock.Mock
}

func (m *MockLogsClient) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudwatchlogs.DescribeLogGroupsOutput), args.Error(1)
}

func (m *MockLogsClient) DeleteLogGroup(ctx context.Context, params *cloudwatchlogs.DeleteLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudwatchlogs.DeleteLogGroupOutput), args.Error(1)
}

// Ensure mocks implement their interfaces
var (
	_ ClientFactory            = (*MockClientFactory)(nil)
	_ CloudFormationOperations = (*MockCloudFormationOperations)(nil)
	_ StorageOperations        = (*MockStorageOperations)(nil)
	_ IdentityOperations       = (*MockIdentityOperations)(nil)
	_ CertificateOperations    = (*MockCertificateOperations)(nil)
	_ LogOperations            = (*MockLogOperations)(nil)
	_ CloudFormationClient     = (*MockCloudFormationClient)(nil)
	_ S3Client                 = (*MockS3Client)(nil)
	_ ObjectUploader           = (*MockObjectUploader)(nil)
	_ STSClient                = (*MockSTSClient)(nil)
	_ ACMClient                = (*MockACMClient)(nil)
	_ LogsClient               = (*MockLogsClient)(nil)
)
