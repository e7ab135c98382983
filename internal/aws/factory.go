/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ClientFactory creates AWS operations with proper region configuration
type ClientFactory interface {
	// CloudFormation returns CloudFormation operations for the specified region
	CloudFormation(ctx context.Context, region string) (CloudFormationOperations, error)

	// Storage returns S3 operations for the specified region
	Storage(ctx context.Context, region string) (StorageOperations, error)

	// Identity returns STS operations in the base region
	Identity(ctx context.Context) (IdentityOperations, error)

	// Certificates returns ACM operations in CertificateRegion
	Certificates(ctx context.Context) (CertificateOperations, error)

	// Logs returns CloudWatch Logs operations for the specified region
	Logs(ctx context.Context, region string) (LogOperations, error)
}

// DefaultClientFactory implements ClientFactory with caching and shared authentication
type DefaultClientFactory struct {
	baseConfig  aws.Config
	clientCache map[string]any
	mutex       sync.RWMutex
}

// NewClientFactory creates a client factory with shared authentication
func NewClientFactory(ctx context.Context, cfg Config) (*DefaultClientFactory, error) {
	baseConfig, err := LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewClientFactoryFromConfig(baseConfig), nil
}

// NewClientFactoryFromConfig creates a client factory around an already loaded configuration
func NewClientFactoryFromConfig(baseConfig aws.Config) *DefaultClientFactory {
	return &DefaultClientFactory{
		baseConfig:  baseConfig,
		clientCache: make(map[string]any),
	}
}

// CloudFormation returns CloudFormation operations for the specified region
func (f *DefaultClientFactory) CloudFormation(ctx context.Context, region string) (CloudFormationOperations, error) {
	return cached(f, "cloudformation", region, func(cfg aws.Config) CloudFormationOperations {
		return NewCloudFormationOperationsWithClient(cloudformation.NewFromConfig(cfg))
	})
}

// Storage returns S3 operations for the specified region
func (f *DefaultClientFactory) Storage(ctx context.Context, region string) (StorageOperations, error) {
	return cached(f, "s3", region, func(cfg aws.Config) StorageOperations {
		client := s3.NewFromConfig(cfg)
		return NewStorageOperationsWithClient(client, manager.NewUploader(client))
	})
}

// Identity returns STS operations in the base region
func (f *DefaultClientFactory) Identity(ctx context.Context) (IdentityOperations, error) {
	return cached(f, "sts", f.baseConfig.Region, func(cfg aws.Config) IdentityOperations {
		return NewIdentityOperationsWithClient(sts.NewFromConfig(cfg))
	})
}

// Certificates returns ACM operations in CertificateRegion
func (f *DefaultClientFactory) Certificates(ctx context.Context) (CertificateOperations, error) {
	return cached(f, "acm", CertificateRegion, func(cfg aws.Config) CertificateOperations {
		return NewCertificateOperationsWithClient(acm.NewFromConfig(cfg))
	})
}

// Logs returns CloudWatch Logs operations for the specified region
func (f *DefaultClientFactory) Logs(ctx context.Context, region string) (LogOperations, error) {
	return cached(f, "logs", region, func(cfg aws.Config) LogOperations {
		return NewLogOperationsWithClient(cloudwatchlogs.NewFromConfig(cfg))
	})
}

// ValidateRegion rejects an empty region; the SDK validates the rest
func ValidateRegion(region string) error {
	if region == "" {
		return fmt.Errorf("region cannot be empty")
	}
	return nil
}

// cached returns the operations stored for service and region, building and
// storing them on first use. An empty region falls back to the base region.
func cached[T any](f *DefaultClientFactory, service, region string, build func(aws.Config) T) (T, error) {
	var zero T
	if region == "" {
		region = f.baseConfig.Region
	}
	if err := ValidateRegion(region); err != nil {
		return zero, err
	}

	key := service + "/" + region

	// Check cache first (read lock)
	f.mutex.RLock()
	if ops, exists := f.clientCache[key]; exists {
		f.mutex.RUnlock()
		return ops.(T), nil
	}
	f.mutex.RUnlock()

	// Create region-specific config from base config
	regionConfig := f.baseConfig.Copy()
	regionConfig.Region = region
	ops := build(regionConfig)

	// Cache for future use (write lock)
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if existing, exists := f.clientCache[key]; exists {
		return existing.(T), nil
	}
	f.clientCache[key] = ops

	return ops, nil
}
