/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"context"

	"github.com/orien/stacks/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockDeployer implements Deployer for testing
type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Deploy(ctx context.Context, op *model.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}
