/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// DefaultLogOperations manages CloudWatch log groups
type DefaultLogOperations struct {
	client LogsClient
}

// NewLogOperationsWithClient creates log operations with a custom client (for testing)
func NewLogOperationsWithClient(client LogsClient) *DefaultLogOperations {
	return &DefaultLogOperations{client: client}
}

// ListLogGroups returns every log group in the region
func (l *DefaultLogOperations) ListLogGroups(ctx context.Context) Page[LogGroup] {
	return FetchAll(ctx, func(ctx context.Context, token *string) ([]LogGroup, *string, error) {
		result, err := l.client.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to describe log groups: %w", err)
		}

		groups := make([]LogGroup, 0, len(result.LogGroups))
		for _, g := range result.LogGroups {
			group := LogGroup{
				Name:            aws.ToString(g.LogGroupName),
				StoredBytes:     aws.ToInt64(g.StoredBytes),
				RetentionInDays: aws.ToInt32(g.RetentionInDays),
			}
			if g.CreationTime != nil {
				created := time.UnixMilli(*g.CreationTime)
				group.CreationTime = &created
			}
			groups = append(groups, group)
		}
		return groups, result.NextToken, nil
	})
}

// DeleteLogGroup deletes a log group and all of its streams
func (l *DefaultLogOperations) DeleteLogGroup(ctx context.Context, name string) error {
	_, err := l.client.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete log group %s: %w", name, err)
	}
	return nil
}
