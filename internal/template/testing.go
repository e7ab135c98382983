/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package template

import "github.com/stretchr/testify/mock"

// MockProcessor implements Processor for testing
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Process(content string, variables map[string]any) (string, error) {
	args := m.Called(content, variables)
	return args.String(0), args.Error(1)
}
