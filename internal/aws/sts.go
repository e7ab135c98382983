/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// DefaultIdentityOperations resolves the caller identity through STS
type DefaultIdentityOperations struct {
	client STSClient
}

// NewIdentityOperationsWithClient creates identity operations with a custom client (for testing)
func NewIdentityOperationsWithClient(client STSClient) *DefaultIdentityOperations {
	return &DefaultIdentityOperations{client: client}
}

// GetCallerIdentity returns the account, ARN and user id of the active credentials
func (i *DefaultIdentityOperations) GetCallerIdentity(ctx context.Context) (*Identity, error) {
	result, err := i.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &Identity{
		Account: aws.ToString(result.Account),
		Arn:     aws.ToString(result.Arn),
		UserID:  aws.ToString(result.UserId),
	}, nil
}
