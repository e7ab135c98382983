/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package delete

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/model"
	"github.com/orien/stacks/internal/monitor"
	"github.com/orien/stacks/internal/prompt"
	"github.com/orien/stacks/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testStackID = "arn:aws:cloudformation:us-west-2:123456789012:stack/test-stack/abc"

var startedAt = time.Date(2025, 5, 6, 10, 0, 0, 0, time.Local)

type fixture struct {
	factory  *aws.MockClientFactory
	cfnOps   *aws.MockCloudFormationOperations
	storage  *aws.MockStorageOperations
	logs     *aws.MockLogOperations
	prompter *prompt.MockPrompter
	out      *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		factory:  &aws.MockClientFactory{},
		cfnOps:   &aws.MockCloudFormationOperations{},
		storage:  &aws.MockStorageOperations{},
		logs:     &aws.MockLogOperations{},
		prompter: &prompt.MockPrompter{},
		out:      &bytes.Buffer{},
	}
	f.factory.On("CloudFormation", mock.Anything, "us-west-2").Return(f.cfnOps, nil).Maybe()
	f.factory.On("Storage", mock.Anything, "").Return(f.storage, nil).Maybe()
	f.factory.On("Logs", mock.Anything, "").Return(f.logs, nil).Maybe()

	original := prompt.GetDefaultPrompter()
	prompt.SetPrompter(f.prompter)
	t.Cleanup(func() { prompt.SetPrompter(original) })
	return f
}

func (f *fixture) deleter(opts ...Option) *ResourceDeleter {
	printer := ui.NewPrinter(f.out, nil)
	printer.SetClock(func() time.Time { return startedAt })
	opts = append([]Option{
		WithClock(func() time.Time { return startedAt }),
		WithMonitorOptions(monitor.WithInterval(time.Hour)),
	}, opts...)
	return NewResourceDeleter(f.factory, printer, opts...)
}

func TestDeleteStack_Confirmed(t *testing.T) {
	f := newFixture(t)
	op := model.NewTestOperation(model.OperationDelete, "test-stack")

	f.cfnOps.On("GetStack", mock.Anything, "test-stack").Return(&aws.Stack{StackID: testStackID, Name: "test-stack"}, nil).Once()
	f.prompter.On("Confirm", ConfirmMessage).Return(true, nil).Once()
	f.cfnOps.On("DeleteStack", mock.Anything, "test-stack").Return(nil).Once()
	f.cfnOps.On("WaitForStackOperation", mock.Anything, testStackID, model.OperationDelete, monitor.DefaultMaxWait).Return(nil).Once()
	f.cfnOps.On("DescribeStackEvents", mock.Anything, testStackID).Return(aws.Page[aws.StackEvent]{Items: []aws.StackEvent{{
		EventId:           "e1",
		LogicalResourceId: "Topic",
		ResourceType:      "AWS::SNS::Topic",
		ResourceStatus:    "DELETE_COMPLETE",
		Timestamp:         startedAt.Add(time.Second),
	}}})

	err := f.deleter().DeleteStack(context.Background(), op)

	require.NoError(t, err)
	f.cfnOps.AssertExpectations(t)
	f.prompter.AssertExpectations(t)
	assert.Contains(t, f.out.String(), "Deleting test-stack AWS::SNS::Topic Topic DELETE_COMPLETE")
	assert.Contains(t, f.out.String(), "Deleting test-stack AWS::CloudFormation::Stack test-stack DELETE_COMPLETE")
}

func TestDeleteStack_AbsentStack(t *testing.T) {
	f := newFixture(t)

	f.cfnOps.On("GetStack", mock.Anything, "missing").
		Return(nil, fmt.Errorf("missing: %w", aws.ErrStackNotFound)).Once()

	err := f.deleter().DeleteStack(context.Background(), model.NewTestOperation(model.OperationDelete, "missing"))

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStack))
	assert.Contains(t, err.Error(), "missing does not exist")
	f.cfnOps.AssertNotCalled(t, "DeleteStack", mock.Anything, mock.Anything)
	f.prompter.AssertNotCalled(t, "Confirm", mock.Anything)
}

func TestDeleteStack_Cancelled(t *testing.T) {
	f := newFixture(t)

	f.cfnOps.On("GetStack", mock.Anything, "test-stack").Return(&aws.Stack{StackID: testStackID}, nil).Once()
	f.prompter.On("Confirm", ConfirmMessage).Return(false, nil).Once()

	err := f.deleter().DeleteStack(context.Background(), model.NewTestOperation(model.OperationDelete, "test-stack"))

	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "Delete operation canceled")
	f.cfnOps.AssertNotCalled(t, "DeleteStack", mock.Anything, mock.Anything)
}

func TestDeleteStack_AssumeYesSkipsPrompt(t *testing.T) {
	f := newFixture(t)

	f.cfnOps.On("GetStack", mock.Anything, "test-stack").Return(&aws.Stack{StackID: testStackID}, nil).Once()
	f.cfnOps.On("DeleteStack", mock.Anything, "test-stack").Return(nil).Once()
	f.cfnOps.On("WaitForStackOperation", mock.Anything, testStackID, model.OperationDelete, mock.Anything).Return(nil).Once()
	f.cfnOps.On("DescribeStackEvents", mock.Anything, testStackID).Return(aws.Page[aws.StackEvent]{})

	err := f.deleter(WithAssumeYes(true)).DeleteStack(context.Background(), model.NewTestOperation(model.OperationDelete, "test-stack"))

	require.NoError(t, err)
	f.prompter.AssertNotCalled(t, "Confirm", mock.Anything)
}

func TestDeleteStack_WaiterFailureSkipsCompletionLine(t *testing.T) {
	f := newFixture(t)

	f.cfnOps.On("GetStack", mock.Anything, "test-stack").Return(&aws.Stack{StackID: testStackID}, nil).Once()
	f.cfnOps.On("DeleteStack", mock.Anything, "test-stack").Return(nil).Once()
	f.cfnOps.On("WaitForStackOperation", mock.Anything, testStackID, model.OperationDelete, mock.Anything).
		Return(errors.New("stack test-stack did not delete successfully")).Once()
	f.cfnOps.On("DescribeStackEvents", mock.Anything, testStackID).Return(aws.Page[aws.StackEvent]{})

	err := f.deleter(WithAssumeYes(true)).DeleteStack(context.Background(), model.NewTestOperation(model.OperationDelete, "test-stack"))

	require.Error(t, err)
	assert.Equal(t, apperr.ExitStack, apperr.ExitCode(err))
	assert.NotContains(t, f.out.String(), "AWS::CloudFormation::Stack")
}

func TestDeleteStack_PromptFailure(t *testing.T) {
	f := newFixture(t)

	f.cfnOps.On("GetStack", mock.Anything, "test-stack").Return(&aws.Stack{StackID: testStackID}, nil).Once()
	f.prompter.On("Confirm", ConfirmMessage).Return(false, errors.New("stdin closed")).Once()

	err := f.deleter().DeleteStack(context.Background(), model.NewTestOperation(model.OperationDelete, "test-stack"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get user confirmation")
	f.cfnOps.AssertNotCalled(t, "DeleteStack", mock.Anything, mock.Anything)
}

func TestDeleteBucket(t *testing.T) {
	t.Run("deletes existing bucket", func(t *testing.T) {
		f := newFixture(t)
		f.storage.On("BucketExists", mock.Anything, "my-bucket").Return(true, nil).Once()
		f.storage.On("DeleteBucket", mock.Anything, "my-bucket").Return(nil).Once()

		err := f.deleter(WithAssumeYes(true)).DeleteBucket(context.Background(), "my-bucket")

		require.NoError(t, err)
		assert.Contains(t, f.out.String(), "Deleting my-bucket AWS::S3::Bucket DELETE_COMPLETE")
	})

	t.Run("absent bucket", func(t *testing.T) {
		f := newFixture(t)
		f.storage.On("BucketExists", mock.Anything, "my-bucket").Return(false, nil).Once()

		err := f.deleter(WithAssumeYes(true)).DeleteBucket(context.Background(), "my-bucket")

		require.Error(t, err)
		assert.Equal(t, apperr.ExitBucket, apperr.ExitCode(err))
		assert.Contains(t, err.Error(), "my-bucket does not exist")
		f.storage.AssertNotCalled(t, "DeleteBucket", mock.Anything, mock.Anything)
	})

	t.Run("delete failure", func(t *testing.T) {
		f := newFixture(t)
		f.storage.On("BucketExists", mock.Anything, "my-bucket").Return(true, nil).Once()
		f.storage.On("DeleteBucket", mock.Anything, "my-bucket").Return(errors.New("BucketNotEmpty")).Once()

		err := f.deleter(WithAssumeYes(true)).DeleteBucket(context.Background(), "my-bucket")

		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindBucket))
	})
}

func TestDeleteLogGroup(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t)
		f.prompter.On("Confirm", ConfirmMessage).Return(true, nil).Once()
		f.logs.On("DeleteLogGroup", mock.Anything, "/aws/lambda/fn").Return(nil).Once()

		err := f.deleter().DeleteLogGroup(context.Background(), "/aws/lambda/fn")

		require.NoError(t, err)
		f.logs.AssertExpectations(t)
	})

	t.Run("failure is a logs error", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("DeleteLogGroup", mock.Anything, "/aws/lambda/fn").Return(errors.New("ResourceNotFoundException")).Once()

		err := f.deleter(WithAssumeYes(true)).DeleteLogGroup(context.Background(), "/aws/lambda/fn")

		require.Error(t, err)
		assert.Equal(t, apperr.ExitLogs, apperr.ExitCode(err))
	})
}

func TestMockDeleter_Interface(t *testing.T) {
	var _ Deleter = (*MockDeleter)(nil)
	var _ Deleter = (*ResourceDeleter)(nil)
}
