/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2025, 7, 8, 14, 5, 6, 0, time.Local)

func newTestReporter() (*Reporter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewReporter(ui.NewPrinter(&out, nil), nil), &out
}

func TestStacks(t *testing.T) {
	cfnOps := &aws.MockCloudFormationOperations{}
	cfnOps.On("ListStacks", mock.Anything).Return(aws.Page[aws.StackSummary]{Items: []aws.StackSummary{
		{Name: "network", Description: "VPC", Status: aws.StackStatusCreateComplete, CreatedTime: &created},
		{Name: "app", Status: aws.StackStatusUpdateComplete, CreatedTime: &created, UpdatedTime: &created},
	}}).Once()
	reporter, out := newTestReporter()

	err := reporter.Stacks(context.Background(), cfnOps)

	require.NoError(t, err)
	output := out.String()
	assert.Contains(t, output, "StackName: network")
	assert.Contains(t, output, "Description: VPC")
	assert.Contains(t, output, "CreationTime: July 8 2025, 2:05:06 pm")
	assert.Contains(t, output, "StackStatus: CREATE_COMPLETE")
	assert.Contains(t, output, "StackName: app")
	assert.Contains(t, output, "LastUpdatedTime: July 8 2025, 2:05:06 pm")
}

func TestStacks_PartialListingWarns(t *testing.T) {
	cfnOps := &aws.MockCloudFormationOperations{}
	cfnOps.On("ListStacks", mock.Anything).Return(aws.Page[aws.StackSummary]{
		Items: []aws.StackSummary{{Name: "network", Status: aws.StackStatusCreateComplete}},
		Err:   errors.New("throttled"),
	}).Once()
	reporter, out := newTestReporter()

	err := reporter.Stacks(context.Background(), cfnOps)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "StackName: network")
	assert.Contains(t, out.String(), "Showing the first 1 stacks only: throttled")
}

func TestStacks_NothingFetched(t *testing.T) {
	cfnOps := &aws.MockCloudFormationOperations{}
	cfnOps.On("ListStacks", mock.Anything).Return(aws.Page[aws.StackSummary]{Err: errors.New("access denied")}).Once()
	reporter, _ := newTestReporter()

	err := reporter.Stacks(context.Background(), cfnOps)

	require.Error(t, err)
	assert.Equal(t, apperr.ExitStack, apperr.ExitCode(err))
	assert.Contains(t, err.Error(), "failed to list stacks")
}

func TestStacks_Empty(t *testing.T) {
	cfnOps := &aws.MockCloudFormationOperations{}
	cfnOps.On("ListStacks", mock.Anything).Return(aws.Page[aws.StackSummary]{}).Once()
	reporter, out := newTestReporter()

	require.NoError(t, reporter.Stacks(context.Background(), cfnOps))
	assert.Contains(t, out.String(), "No stacks found")
}

func TestExports(t *testing.T) {
	cfnOps := &aws.MockCloudFormationOperations{}
	cfnOps.On("ListExports", mock.Anything).Return(aws.Page[aws.Export]{Items: []aws.Export{{
		Name:             "network-VpcId",
		Value:            "vpc-123",
		ExportingStackId: "arn:aws:cloudformation:us-west-2:123456789012:stack/network/0a1b2c",
	}}}).Once()
	reporter, out := newTestReporter()

	err := reporter.Exports(context.Background(), cfnOps)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Export Name: network-VpcId")
	assert.Contains(t, out.String(), "Export Value: vpc-123")
	assert.Contains(t, out.String(), "Exporting Stack Name: network")
	assert.Contains(t, out.String(), "Exporting Stack ID: 0a1b2c")
}

func TestBuckets(t *testing.T) {
	storage := &aws.MockStorageOperations{}
	storage.On("ListBuckets", mock.Anything).Return(&aws.BucketListing{
		Owner:   "ops",
		Buckets: []aws.Bucket{{Name: "cf-templates-123456789012-us-west-2", CreationDate: &created}},
	}, nil).Once()
	reporter, out := newTestReporter()

	err := reporter.Buckets(context.Background(), storage)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Buckets Owner: ops")
	assert.Contains(t, out.String(), "Bucket: cf-templates-123456789012-us-west-2")
	assert.Contains(t, out.String(), "CreationDate: July 8 2025, 2:05:06 pm")
}

func TestBuckets_Failure(t *testing.T) {
	storage := &aws.MockStorageOperations{}
	storage.On("ListBuckets", mock.Anything).Return(nil, errors.New("access denied")).Once()
	reporter, _ := newTestReporter()

	err := reporter.Buckets(context.Background(), storage)

	require.Error(t, err)
	assert.Equal(t, apperr.ExitBucket, apperr.ExitCode(err))
}

func TestLogGroups(t *testing.T) {
	logs := &aws.MockLogOperations{}
	logs.On("ListLogGroups", mock.Anything).Return(aws.Page[aws.LogGroup]{Items: []aws.LogGroup{
		{Name: "/aws/lambda/fn", CreationTime: &created, StoredBytes: 1536, RetentionInDays: 14},
		{Name: "/ecs/app", CreationTime: &created},
	}}).Once()
	reporter, out := newTestReporter()

	err := reporter.LogGroups(context.Background(), logs)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "LogGroupName: /aws/lambda/fn")
	assert.Contains(t, out.String(), "StoredBytes: 1.5 KiB")
	assert.Contains(t, out.String(), "RetentionInDays: 14")
	assert.Contains(t, out.String(), "RetentionInDays: Never expire")
}

func TestLogGroups_Failure(t *testing.T) {
	logs := &aws.MockLogOperations{}
	logs.On("ListLogGroups", mock.Anything).Return(aws.Page[aws.LogGroup]{Err: errors.New("denied")}).Once()
	reporter, _ := newTestReporter()

	err := reporter.LogGroups(context.Background(), logs)

	require.Error(t, err)
	assert.Equal(t, apperr.ExitLogs, apperr.ExitCode(err))
}

func TestCertificates(t *testing.T) {
	certs := &aws.MockCertificateOperations{}
	certs.On("ListCertificates", mock.Anything).Return(aws.Page[aws.Certificate]{Items: []aws.Certificate{{
		DomainName:     "example.com",
		CertificateArn: "arn:aws:acm:us-east-1:123456789012:certificate/abc",
		Status:         "ISSUED",
	}}}).Once()
	reporter, out := newTestReporter()

	err := reporter.Certificates(context.Background(), certs)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "AWS Region: us-east-1 (certs are in us-east-1)")
	assert.Contains(t, out.String(), "DomainName: example.com")
	assert.Contains(t, out.String(), "CertificateArn: arn:aws:acm:us-east-1:123456789012:certificate/abc")
	assert.Contains(t, out.String(), "Status: ISSUED")
}

func TestCertificates_Failure(t *testing.T) {
	certs := &aws.MockCertificateOperations{}
	certs.On("ListCertificates", mock.Anything).Return(aws.Page[aws.Certificate]{Err: errors.New("denied")}).Once()
	reporter, _ := newTestReporter()

	err := reporter.Certificates(context.Background(), certs)

	require.Error(t, err)
	assert.Equal(t, apperr.ExitCertificate, apperr.ExitCode(err))
}

func TestAccount(t *testing.T) {
	identity := &aws.MockIdentityOperations{}
	identity.On("GetCallerIdentity", mock.Anything).Return(&aws.Identity{
		Account: "123456789012",
		Arn:     "arn:aws:iam::123456789012:user/deployer",
		UserID:  "AIDAEXAMPLE",
	}, nil).Once()
	reporter, out := newTestReporter()

	err := reporter.Account(context.Background(), identity)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "UserName: deployer")
	assert.Contains(t, out.String(), "UserId: AIDAEXAMPLE")
	assert.Contains(t, out.String(), "AccountId: 123456789012")
	assert.Contains(t, out.String(), "Arn: arn:aws:iam::123456789012:user/deployer")
}

func TestAccount_Failure(t *testing.T) {
	identity := &aws.MockIdentityOperations{}
	identity.On("GetCallerIdentity", mock.Anything).Return(nil, errors.New("expired")).Once()
	reporter, _ := newTestReporter()

	err := reporter.Account(context.Background(), identity)

	require.Error(t, err)
	assert.Equal(t, apperr.ExitAccount, apperr.ExitCode(err))
}
