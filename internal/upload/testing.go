/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package upload

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUploader implements Uploader for testing
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) EnsureBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *MockUploader) UploadBody(ctx context.Context, bucket, key string, body []byte) error {
	args := m.Called(ctx, bucket, key, string(body))
	return args.Error(0)
}

func (m *MockUploader) UploadFile(ctx context.Context, bucket, path string) (string, error) {
	args := m.Called(ctx, bucket, path)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) UploadDir(ctx context.Context, bucket, dir string) ([]string, error) {
	args := m.Called(ctx, bucket, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
