/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testAccount = "123456789012"
	testBucket  = "cf-templates-123456789012-us-west-2"
	testStackID = "arn:aws:cloudformation:us-west-2:123456789012:stack/network/abc"
)

// harness runs the command tree against mocked AWS operations
type harness struct {
	config   *config.Config
	factory  *aws.MockClientFactory
	cfnOps   *aws.MockCloudFormationOperations
	storage  *aws.MockStorageOperations
	identity *aws.MockIdentityOperations
	certs    *aws.MockCertificateOperations
	logs     *aws.MockLogOperations
	out      bytes.Buffer
	errOut   bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.Defaults()
	cfg.PollInterval = time.Hour

	h := &harness{
		config:   cfg,
		factory:  &aws.MockClientFactory{},
		cfnOps:   &aws.MockCloudFormationOperations{},
		storage:  &aws.MockStorageOperations{},
		identity: &aws.MockIdentityOperations{},
		certs:    &aws.MockCertificateOperations{},
		logs:     &aws.MockLogOperations{},
	}
	h.factory.On("CloudFormation", mock.Anything, mock.Anything).Return(h.cfnOps, nil).Maybe()
	h.factory.On("Storage", mock.Anything, mock.Anything).Return(h.storage, nil).Maybe()
	h.factory.On("Identity", mock.Anything).Return(h.identity, nil).Maybe()
	h.factory.On("Certificates", mock.Anything).Return(h.certs, nil).Maybe()
	h.factory.On("Logs", mock.Anything, mock.Anything).Return(h.logs, nil).Maybe()

	provider := &config.MockConfigProvider{}
	provider.On("LoadConfig", mock.Anything).Return(cfg, nil).Maybe()

	SetClientFactory(h.factory)
	SetConfigProvider(provider)
	t.Cleanup(func() {
		SetClientFactory(nil)
		SetConfigProvider(nil)
		SetDeployer(nil)
		SetUploader(nil)
		SetValidator(nil)
		SetDeleter(nil)
		SetDescriber(nil)
	})
	return h
}

func (h *harness) run(args ...string) error {
	root := newRootCmd()
	root.SetOut(&h.out)
	root.SetErr(&h.errOut)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
