/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package delete

import (
	"context"

	"github.com/orien/stacks/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockDeleter implements Deleter for testing
type MockDeleter struct {
	mock.Mock
}

func (m *MockDeleter) DeleteStack(ctx context.Context, op *model.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockDeleter) DeleteBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *MockDeleter) DeleteLogGroup(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
