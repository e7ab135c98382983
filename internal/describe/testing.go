/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package describe

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDescriber implements Describer for testing
type MockDescriber struct {
	mock.Mock
}

func (m *MockDescriber) DescribeStack(ctx context.Context, stackName string) error {
	args := m.Called(ctx, stackName)
	return args.Error(0)
}
