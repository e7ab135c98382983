/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/smithy-go"
	"github.com/orien/stacks/internal/model"
)

// ErrStackNotFound is returned when a referenced stack does not exist
var ErrStackNotFound = errors.New("stack does not exist")

// ErrNoChanges is returned by UpdateStack when the template and parameters
// match what is already deployed
var ErrNoChanges = errors.New("no updates are to be performed")

// waiterMinDelay is the shortest interval between waiter status checks
const waiterMinDelay = 5 * time.Second

// DefaultCloudFormationOperations provides CloudFormation-specific operations
type DefaultCloudFormationOperations struct {
	client CloudFormationClient
}

// NewCloudFormationOperationsWithClient creates operations with a custom client (for testing)
func NewCloudFormationOperationsWithClient(client CloudFormationClient) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client: client,
	}
}

// CreateStack sends a create request and returns the new stack's id
func (cf *DefaultCloudFormationOperations) CreateStack(ctx context.Context, input CreateStackInput) (string, error) {
	request := &cloudformation.CreateStackInput{
		StackName:    aws.String(input.StackName),
		TemplateURL:  aws.String(input.TemplateURL),
		Parameters:   toParameters(input.Parameters),
		Capabilities: toCapabilities(input.Capabilities),
	}
	if input.OnFailure != "" {
		request.OnFailure = types.OnFailure(input.OnFailure)
	}
	if input.EnableTerminationProtection {
		request.EnableTerminationProtection = aws.Bool(true)
	}

	result, err := cf.client.CreateStack(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to create stack %s: %w", input.StackName, err)
	}

	return aws.ToString(result.StackId), nil
}

// UpdateStack sends an update request and returns the stack's id. When there
// is nothing to change the returned error wraps ErrNoChanges.
func (cf *DefaultCloudFormationOperations) UpdateStack(ctx context.Context, input UpdateStackInput) (string, error) {
	result, err := cf.client.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(input.StackName),
		TemplateURL:  aws.String(input.TemplateURL),
		Parameters:   toParameters(input.Parameters),
		Capabilities: toCapabilities(input.Capabilities),
	})
	if err != nil {
		if isNoChangesError(err) {
			return "", fmt.Errorf("stack %s: %w", input.StackName, ErrNoChanges)
		}
		return "", fmt.Errorf("failed to update stack %s: %w", input.StackName, err)
	}

	return aws.ToString(result.StackId), nil
}

// DeleteStack deletes a CloudFormation stack
func (cf *DefaultCloudFormationOperations) DeleteStack(ctx context.Context, stackName string) error {
	_, err := cf.client.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", stackName, err)
	}

	return nil
}

// GetStack retrieves information about a specific stack
func (cf *DefaultCloudFormationOperations) GetStack(ctx context.Context, stackName string) (*Stack, error) {
	result, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		if isStackNotFoundError(err) {
			return nil, fmt.Errorf("%s: %w", stackName, ErrStackNotFound)
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", stackName, err)
	}

	if len(result.Stacks) == 0 {
		return nil, fmt.Errorf("%s: %w", stackName, ErrStackNotFound)
	}

	cfnStack := result.Stacks[0]
	stack := &Stack{
		StackID:     aws.ToString(cfnStack.StackId),
		Name:        aws.ToString(cfnStack.StackName),
		Status:      StackStatus(cfnStack.StackStatus),
		CreatedTime: cfnStack.CreationTime,
		UpdatedTime: cfnStack.LastUpdatedTime,
		Description: aws.ToString(cfnStack.Description),
		Parameters:  make(map[string]string),
		Outputs:     make(map[string]string),
		Tags:        make(map[string]string),
	}

	for _, param := range cfnStack.Parameters {
		stack.Parameters[aws.ToString(param.ParameterKey)] = aws.ToString(param.ParameterValue)
	}
	for _, output := range cfnStack.Outputs {
		stack.Outputs[aws.ToString(output.OutputKey)] = aws.ToString(output.OutputValue)
	}
	for _, tag := range cfnStack.Tags {
		stack.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	return stack, nil
}

// StackExists checks if a stack exists
func (cf *DefaultCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := cf.GetStack(ctx, stackName)
	if err != nil {
		if errors.Is(err, ErrStackNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if stack exists: %w", err)
	}

	return true, nil
}

// DescribeStackEvents fetches every event recorded for a stack, newest first
// as the control plane returns them
func (cf *DefaultCloudFormationOperations) DescribeStackEvents(ctx context.Context, stackName string) Page[StackEvent] {
	return FetchAll(ctx, func(ctx context.Context, token *string) ([]StackEvent, *string, error) {
		result, err := cf.client.DescribeStackEvents(ctx, &cloudformation.DescribeStackEventsInput{
			StackName: aws.String(stackName),
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to describe events for stack %s: %w", stackName, err)
		}

		events := make([]StackEvent, 0, len(result.StackEvents))
		for _, e := range result.StackEvents {
			events = append(events, StackEvent{
				EventId:              aws.ToString(e.EventId),
				StackName:            aws.ToString(e.StackName),
				LogicalResourceId:    aws.ToString(e.LogicalResourceId),
				PhysicalResourceId:   aws.ToString(e.PhysicalResourceId),
				ResourceType:         aws.ToString(e.ResourceType),
				Timestamp:            aws.ToTime(e.Timestamp),
				ResourceStatus:       string(e.ResourceStatus),
				ResourceStatusReason: aws.ToString(e.ResourceStatusReason),
			})
		}
		return events, result.NextToken, nil
	})
}

// WaitForStackOperation blocks until the stack reaches a terminal state for
// the given operation kind, or maxWait elapses
func (cf *DefaultCloudFormationOperations) WaitForStackOperation(ctx context.Context, stackName string, kind model.OperationKind, maxWait time.Duration) error {
	input := &cloudformation.DescribeStacksInput{StackName: aws.String(stackName)}

	var err error
	switch kind {
	case model.OperationCreate:
		waiter := cloudformation.NewStackCreateCompleteWaiter(cf.client, func(o *cloudformation.StackCreateCompleteWaiterOptions) {
			o.MinDelay = waiterMinDelay
		})
		err = waiter.Wait(ctx, input, maxWait)
	case model.OperationUpdate:
		waiter := cloudformation.NewStackUpdateCompleteWaiter(cf.client, func(o *cloudformation.StackUpdateCompleteWaiterOptions) {
			o.MinDelay = waiterMinDelay
		})
		err = waiter.Wait(ctx, input, maxWait)
	case model.OperationDelete:
		waiter := cloudformation.NewStackDeleteCompleteWaiter(cf.client, func(o *cloudformation.StackDeleteCompleteWaiterOptions) {
			o.MinDelay = waiterMinDelay
		})
		err = waiter.Wait(ctx, input, maxWait)
	default:
		return fmt.Errorf("unsupported stack operation %q", kind)
	}

	if err != nil {
		return fmt.Errorf("stack %s did not %s successfully: %w", stackName, kind, err)
	}
	return nil
}

// ListStacks returns every stack whose status is in ListedStackStatuses
func (cf *DefaultCloudFormationOperations) ListStacks(ctx context.Context) Page[StackSummary] {
	filter := make([]types.StackStatus, len(ListedStackStatuses))
	for i, status := range ListedStackStatuses {
		filter[i] = types.StackStatus(status)
	}

	return FetchAll(ctx, func(ctx context.Context, token *string) ([]StackSummary, *string, error) {
		result, err := cf.client.ListStacks(ctx, &cloudformation.ListStacksInput{
			NextToken:         token,
			StackStatusFilter: filter,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list stacks: %w", err)
		}

		stacks := make([]StackSummary, 0, len(result.StackSummaries))
		for _, summary := range result.StackSummaries {
			stacks = append(stacks, StackSummary{
				StackID:     aws.ToString(summary.StackId),
				Name:        aws.ToString(summary.StackName),
				Status:      StackStatus(summary.StackStatus),
				Description: aws.ToString(summary.TemplateDescription),
				CreatedTime: summary.CreationTime,
				UpdatedTime: summary.LastUpdatedTime,
			})
		}
		return stacks, result.NextToken, nil
	})
}

// ListExports returns every export in the account and region
func (cf *DefaultCloudFormationOperations) ListExports(ctx context.Context) Page[Export] {
	return FetchAll(ctx, func(ctx context.Context, token *string) ([]Export, *string, error) {
		result, err := cf.client.ListExports(ctx, &cloudformation.ListExportsInput{
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list exports: %w", err)
		}

		exports := make([]Export, 0, len(result.Exports))
		for _, e := range result.Exports {
			exports = append(exports, Export{
				Name:             aws.ToString(e.Name),
				Value:            aws.ToString(e.Value),
				ExportingStackId: aws.ToString(e.ExportingStackId),
			})
		}
		return exports, result.NextToken, nil
	})
}

// ValidateTemplate validates a CloudFormation template body
func (cf *DefaultCloudFormationOperations) ValidateTemplate(ctx context.Context, templateBody string) (*TemplateSummary, error) {
	result, err := cf.client.ValidateTemplate(ctx, &cloudformation.ValidateTemplateInput{
		TemplateBody: aws.String(templateBody),
	})
	if err != nil {
		return nil, fmt.Errorf("template validation failed: %w", err)
	}

	summary := &TemplateSummary{
		Description: aws.ToString(result.Description),
	}
	for _, p := range result.Parameters {
		summary.Parameters = append(summary.Parameters, aws.ToString(p.ParameterKey))
	}
	for _, c := range result.Capabilities {
		summary.Capabilities = append(summary.Capabilities, string(c))
	}
	return summary, nil
}

func toParameters(params []Parameter) []types.Parameter {
	result := make([]types.Parameter, len(params))
	for i, p := range params {
		result[i] = types.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		}
	}
	return result
}

func toCapabilities(capabilities []string) []types.Capability {
	result := make([]types.Capability, len(capabilities))
	for i, c := range capabilities {
		result[i] = types.Capability(c)
	}
	return result
}

// isStackNotFoundError checks if the error indicates the stack doesn't exist
func isStackNotFoundError(err error) bool {
	return hasValidationMessage(err, "does not exist")
}

// isNoChangesError checks if an update was rejected because nothing changed
func isNoChangesError(err error) bool {
	return hasValidationMessage(err, "No updates are to be performed")
}

// hasValidationMessage matches CloudFormation ValidationError responses by
// message, falling back to the error text for errors that did not come from
// the API.
func hasValidationMessage(err error, fragment string) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" && strings.Contains(apiErr.ErrorMessage(), fragment)
	}
	return strings.Contains(err.Error(), fragment)
}
