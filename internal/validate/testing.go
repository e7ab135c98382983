/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package validate

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockValidator is a mock implementation of Validator for testing
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, path string, variables map[string]string) error {
	args := m.Called(ctx, path, variables)
	return args.Error(0)
}

func (m *MockValidator) ValidateDir(ctx context.Context, dir string, variables map[string]string) error {
	args := m.Called(ctx, dir, variables)
	return args.Error(0)
}
