/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
	"github.com/orien/stacks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testStackID = "arn:aws:cloudformation:us-west-2:123456789012:stack/test-stack/0a1b2c3d"

func TestCreateStack_SendsRequestAndReturnsStackID(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("CreateStack", ctx, mock.MatchedBy(func(input *cloudformation.CreateStackInput) bool {
		return aws.ToString(input.StackName) == "test-stack" &&
			aws.ToString(input.TemplateURL) == "https://s3.us-west-2.amazonaws.com/bucket/stack.yml" &&
			input.OnFailure == types.OnFailureDelete &&
			aws.ToBool(input.EnableTerminationProtection) &&
			len(input.Capabilities) == 2 &&
			len(input.Parameters) == 1 &&
			aws.ToString(input.Parameters[0].ParameterKey) == "Env"
	})).Return(&cloudformation.CreateStackOutput{StackId: aws.String(testStackID)}, nil)

	stackID, err := cfOps.CreateStack(ctx, CreateStackInput{
		StackName:                   "test-stack",
		TemplateURL:                 "https://s3.us-west-2.amazonaws.com/bucket/stack.yml",
		Parameters:                  []Parameter{{Key: "Env", Value: "dev"}},
		Capabilities:                Capabilities,
		OnFailure:                   "DELETE",
		EnableTerminationProtection: true,
	})

	require.NoError(t, err)
	assert.Equal(t, testStackID, stackID)
	mockClient.AssertExpectations(t)
}

func TestCreateStack_OmitsOptionalFields(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("CreateStack", ctx, mock.MatchedBy(func(input *cloudformation.CreateStackInput) bool {
		return input.OnFailure == "" && input.EnableTerminationProtection == nil
	})).Return(&cloudformation.CreateStackOutput{StackId: aws.String(testStackID)}, nil)

	_, err := cfOps.CreateStack(ctx, CreateStackInput{StackName: "test-stack", TemplateURL: "url"})

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestCreateStack_Error(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("CreateStack", ctx, mock.Anything).Return(nil, errors.New("AlreadyExistsException"))

	_, err := cfOps.CreateStack(ctx, CreateStackInput{StackName: "test-stack"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create stack test-stack")
}

func TestUpdateStack_ReturnsStackID(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("UpdateStack", ctx, mock.MatchedBy(func(input *cloudformation.UpdateStackInput) bool {
		return aws.ToString(input.StackName) == "test-stack"
	})).Return(&cloudformation.UpdateStackOutput{StackId: aws.String(testStackID)}, nil)

	stackID, err := cfOps.UpdateStack(ctx, UpdateStackInput{StackName: "test-stack", TemplateURL: "url"})

	require.NoError(t, err)
	assert.Equal(t, testStackID, stackID)
}

func TestUpdateStack_NoChanges(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "api error",
			err:  &smithy.GenericAPIError{Code: "ValidationError", Message: "No updates are to be performed."},
		},
		{
			name: "plain error",
			err:  errors.New("ValidationError: No updates are to be performed."),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockClient := &MockCloudFormationClient{}
			cfOps := NewCloudFormationOperationsWithClient(mockClient)

			mockClient.On("UpdateStack", ctx, mock.Anything).Return(nil, tt.err)

			_, err := cfOps.UpdateStack(ctx, UpdateStackInput{StackName: "test-stack"})

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoChanges)
		})
	}
}

func TestUpdateStack_OtherValidationErrorIsNotNoChanges(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("UpdateStack", ctx, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "ValidationError", Message: "Template format error"})

	_, err := cfOps.UpdateStack(ctx, UpdateStackInput{StackName: "test-stack"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoChanges)
	assert.Contains(t, err.Error(), "failed to update stack test-stack")
}

func TestDeleteStack(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DeleteStack", ctx, mock.MatchedBy(func(input *cloudformation.DeleteStackInput) bool {
		return aws.ToString(input.StackName) == "test-stack"
	})).Return(&cloudformation.DeleteStackOutput{}, nil)

	err := cfOps.DeleteStack(ctx, "test-stack")

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestGetStack_ConvertsStack(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mockClient.On("DescribeStacks", ctx, mock.Anything).Return(&cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{
			{
				StackId:      aws.String(testStackID),
				StackName:    aws.String("test-stack"),
				StackStatus:  types.StackStatusCreateComplete,
				CreationTime: aws.Time(created),
				Description:  aws.String("test stack"),
				Parameters:   []types.Parameter{{ParameterKey: aws.String("Env"), ParameterValue: aws.String("dev")}},
				Outputs:      []types.Output{{OutputKey: aws.String("Url"), OutputValue: aws.String("https://example.com")}},
				Tags:         []types.Tag{{Key: aws.String("Team"), Value: aws.String("platform")}},
			},
		},
	}, nil)

	stack, err := cfOps.GetStack(ctx, "test-stack")

	require.NoError(t, err)
	assert.Equal(t, testStackID, stack.StackID)
	assert.Equal(t, "test-stack", stack.Name)
	assert.Equal(t, StackStatusCreateComplete, stack.Status)
	assert.Equal(t, created, *stack.CreatedTime)
	assert.Equal(t, "dev", stack.Parameters["Env"])
	assert.Equal(t, "https://example.com", stack.Outputs["Url"])
	assert.Equal(t, "platform", stack.Tags["Team"])
}

func TestGetStack_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		output *cloudformation.DescribeStacksOutput
		err    error
	}{
		{
			name: "validation error",
			err:  &smithy.GenericAPIError{Code: "ValidationError", Message: "Stack with id test-stack does not exist"},
		},
		{
			name:   "empty result",
			output: &cloudformation.DescribeStacksOutput{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockClient := &MockCloudFormationClient{}
			cfOps := NewCloudFormationOperationsWithClient(mockClient)

			if tt.output != nil {
				mockClient.On("DescribeStacks", ctx, mock.Anything).Return(tt.output, nil)
			} else {
				mockClient.On("DescribeStacks", ctx, mock.Anything).Return(nil, tt.err)
			}

			stack, err := cfOps.GetStack(ctx, "test-stack")

			assert.Nil(t, stack)
			assert.ErrorIs(t, err, ErrStackNotFound)
		})
	}
}

func TestStackExists(t *testing.T) {
	tests := []struct {
		name        string
		output      *cloudformation.DescribeStacksOutput
		err         error
		expected    bool
		expectError bool
	}{
		{
			name:     "exists",
			output:   &cloudformation.DescribeStacksOutput{Stacks: []types.Stack{{StackName: aws.String("test-stack")}}},
			expected: true,
		},
		{
			name:     "missing",
			err:      errors.New("ValidationError: Stack with id test-stack does not exist"),
			expected: false,
		},
		{
			name:        "access denied",
			err:         &smithy.GenericAPIError{Code: "AccessDenied", Message: "not authorized"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockClient := &MockCloudFormationClient{}
			cfOps := NewCloudFormationOperationsWithClient(mockClient)

			if tt.output != nil {
				mockClient.On("DescribeStacks", ctx, mock.Anything).Return(tt.output, nil)
			} else {
				mockClient.On("DescribeStacks", ctx, mock.Anything).Return(nil, tt.err)
			}

			exists, err := cfOps.StackExists(ctx, "test-stack")

			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
		})
	}
}

func TestDescribeStackEvents_FollowsPages(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)
	now := time.Now()

	mockClient.On("DescribeStackEvents", ctx, mock.MatchedBy(func(input *cloudformation.DescribeStackEventsInput) bool {
		return input.NextToken == nil && aws.ToString(input.StackName) == testStackID
	})).Return(&cloudformation.DescribeStackEventsOutput{
		StackEvents: []types.StackEvent{
			{
				EventId:           aws.String("event-2"),
				StackName:         aws.String("test-stack"),
				LogicalResourceId: aws.String("Bucket"),
				ResourceType:      aws.String("AWS::S3::Bucket"),
				Timestamp:         aws.Time(now),
				ResourceStatus:    types.ResourceStatusCreateComplete,
			},
		},
		NextToken: aws.String("page-2"),
	}, nil)
	mockClient.On("DescribeStackEvents", ctx, mock.MatchedBy(func(input *cloudformation.DescribeStackEventsInput) bool {
		return aws.ToString(input.NextToken) == "page-2"
	})).Return(&cloudformation.DescribeStackEventsOutput{
		StackEvents: []types.StackEvent{
			{
				EventId:              aws.String("event-1"),
				StackName:            aws.String("test-stack"),
				LogicalResourceId:    aws.String("Bucket"),
				ResourceType:         aws.String("AWS::S3::Bucket"),
				Timestamp:            aws.Time(now.Add(-time.Minute)),
				ResourceStatus:       types.ResourceStatusCreateInProgress,
				ResourceStatusReason: aws.String("Resource creation Initiated"),
			},
		},
	}, nil)

	page := cfOps.DescribeStackEvents(ctx, testStackID)

	require.NoError(t, page.Err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "event-2", page.Items[0].EventId)
	assert.Equal(t, "CREATE_COMPLETE", page.Items[0].ResourceStatus)
	assert.Equal(t, "event-1", page.Items[1].EventId)
	assert.Equal(t, "Resource creation Initiated", page.Items[1].ResourceStatusReason)
	mockClient.AssertExpectations(t)
}

func TestDescribeStackEvents_PartialOnError(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DescribeStackEvents", ctx, mock.MatchedBy(func(input *cloudformation.DescribeStackEventsInput) bool {
		return input.NextToken == nil
	})).Return(&cloudformation.DescribeStackEventsOutput{
		StackEvents: []types.StackEvent{{EventId: aws.String("event-1"), Timestamp: aws.Time(time.Now())}},
		NextToken:   aws.String("page-2"),
	}, nil)
	mockClient.On("DescribeStackEvents", ctx, mock.MatchedBy(func(input *cloudformation.DescribeStackEventsInput) bool {
		return aws.ToString(input.NextToken) == "page-2"
	})).Return(nil, errors.New("Rate exceeded"))

	page := cfOps.DescribeStackEvents(ctx, testStackID)

	require.Error(t, page.Err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "event-1", page.Items[0].EventId)
}

func TestWaitForStackOperation_Success(t *testing.T) {
	tests := []struct {
		kind   model.OperationKind
		status types.StackStatus
	}{
		{kind: model.OperationCreate, status: types.StackStatusCreateComplete},
		{kind: model.OperationUpdate, status: types.StackStatusUpdateComplete},
		{kind: model.OperationDelete, status: types.StackStatusDeleteComplete},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			mockClient := &MockCloudFormationClient{}
			cfOps := NewCloudFormationOperationsWithClient(mockClient)

			mockClient.On("DescribeStacks", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStacksOutput{
				Stacks: []types.Stack{{StackName: aws.String("test-stack"), StackStatus: tt.status}},
			}, nil)

			err := cfOps.WaitForStackOperation(context.Background(), testStackID, tt.kind, time.Minute)

			require.NoError(t, err)
		})
	}
}

func TestWaitForStackOperation_FailureState(t *testing.T) {
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("DescribeStacks", mock.Anything, mock.Anything).Return(&cloudformation.DescribeStacksOutput{
		Stacks: []types.Stack{{StackName: aws.String("test-stack"), StackStatus: types.StackStatusRollbackComplete}},
	}, nil)

	err := cfOps.WaitForStackOperation(context.Background(), testStackID, model.OperationCreate, time.Minute)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not create successfully")
}

func TestWaitForStackOperation_UnknownKind(t *testing.T) {
	cfOps := NewCloudFormationOperationsWithClient(&MockCloudFormationClient{})

	err := cfOps.WaitForStackOperation(context.Background(), testStackID, model.OperationKind("import"), time.Minute)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported stack operation")
}

func TestListStacks_AppliesStatusFilter(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("ListStacks", ctx, mock.MatchedBy(func(input *cloudformation.ListStacksInput) bool {
		if len(input.StackStatusFilter) != len(ListedStackStatuses) {
			return false
		}
		for _, status := range input.StackStatusFilter {
			if status == types.StackStatusDeleteComplete {
				return false
			}
		}
		return true
	})).Return(&cloudformation.ListStacksOutput{
		StackSummaries: []types.StackSummary{
			{
				StackId:     aws.String(testStackID),
				StackName:   aws.String("test-stack"),
				StackStatus: types.StackStatusUpdateComplete,
			},
		},
	}, nil)

	page := cfOps.ListStacks(ctx)

	require.NoError(t, page.Err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "test-stack", page.Items[0].Name)
	assert.Equal(t, StackStatusUpdateComplete, page.Items[0].Status)
	mockClient.AssertExpectations(t)
}

func TestListExports(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("ListExports", ctx, mock.Anything).Return(&cloudformation.ListExportsOutput{
		Exports: []types.Export{
			{
				Name:             aws.String("VpcId"),
				Value:            aws.String("vpc-123"),
				ExportingStackId: aws.String(testStackID),
			},
		},
	}, nil)

	page := cfOps.ListExports(ctx)

	require.NoError(t, page.Err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "VpcId", page.Items[0].Name)
	assert.Equal(t, "test-stack", page.Items[0].ExportingStackName())
	assert.Equal(t, "0a1b2c3d", page.Items[0].ExportingStackUUID())
}

func TestValidateTemplate(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("ValidateTemplate", ctx, mock.MatchedBy(func(input *cloudformation.ValidateTemplateInput) bool {
		return aws.ToString(input.TemplateBody) == `{"Resources":{}}`
	})).Return(&cloudformation.ValidateTemplateOutput{
		Description:  aws.String("test template"),
		Parameters:   []types.TemplateParameter{{ParameterKey: aws.String("Env")}},
		Capabilities: []types.Capability{types.CapabilityCapabilityIam},
	}, nil)

	summary, err := cfOps.ValidateTemplate(ctx, `{"Resources":{}}`)

	require.NoError(t, err)
	assert.Equal(t, "test template", summary.Description)
	assert.Equal(t, []string{"Env"}, summary.Parameters)
	assert.Equal(t, []string{"CAPABILITY_IAM"}, summary.Capabilities)
}

func TestValidateTemplate_Invalid(t *testing.T) {
	ctx := context.Background()
	mockClient := &MockCloudFormationClient{}
	cfOps := NewCloudFormationOperationsWithClient(mockClient)

	mockClient.On("ValidateTemplate", ctx, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "ValidationError", Message: "Template format error"})

	summary, err := cfOps.ValidateTemplate(ctx, "{}")

	assert.Nil(t, summary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Template format error")
}
