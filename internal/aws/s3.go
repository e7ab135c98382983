/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// usEast1 is the one region where CreateBucket must not send a location constraint
const usEast1 = "us-east-1"

// bucketPageSize bounds each ListBuckets page
const bucketPageSize = 1000

// DefaultStorageOperations provides S3 operations for template buckets
type DefaultStorageOperations struct {
	client   S3Client
	uploader ObjectUploader
}

// NewStorageOperationsWithClient creates storage operations with custom clients (for testing)
func NewStorageOperationsWithClient(client S3Client, uploader ObjectUploader) *DefaultStorageOperations {
	return &DefaultStorageOperations{
		client:   client,
		uploader: uploader,
	}
}

// BucketExists reports whether the bucket exists and is reachable
func (s *DefaultStorageOperations) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if isBucketNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("could not access bucket %q: %w", bucket, err)
	}

	return true, nil
}

// CreateBucket creates a bucket in the given region
func (s *DefaultStorageOperations) CreateBucket(ctx context.Context, bucket, region string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	if region != "" && region != usEast1 {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// PutObject uploads body to bucket under key
func (s *DefaultStorageOperations) PutObject(ctx context.Context, bucket, key string, body io.Reader) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// ListBuckets returns every bucket owned by the caller. A failure part way
// through is recorded on the listing alongside the buckets already fetched.
func (s *DefaultStorageOperations) ListBuckets(ctx context.Context) (*BucketListing, error) {
	listing := &BucketListing{}

	page := FetchAll(ctx, func(ctx context.Context, token *string) ([]Bucket, *string, error) {
		result, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{
			ContinuationToken: token,
			MaxBuckets:        aws.Int32(bucketPageSize),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list buckets: %w", err)
		}

		if listing.Owner == "" && result.Owner != nil {
			listing.Owner = aws.ToString(result.Owner.DisplayName)
			if listing.Owner == "" {
				listing.Owner = aws.ToString(result.Owner.ID)
			}
		}

		buckets := make([]Bucket, 0, len(result.Buckets))
		for _, b := range result.Buckets {
			buckets = append(buckets, Bucket{
				Name:         aws.ToString(b.Name),
				CreationDate: b.CreationDate,
			})
		}
		return buckets, result.ContinuationToken, nil
	})

	if len(page.Items) == 0 && page.Err != nil {
		return nil, page.Err
	}

	listing.Buckets = page.Items
	listing.Err = page.Err
	return listing, nil
}

// DeleteBucket deletes an empty bucket
func (s *DefaultStorageOperations) DeleteBucket(ctx context.Context, bucket string) error {
	_, err := s.client.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to delete bucket %s: %w", bucket, err)
	}
	return nil
}

// isBucketNotFoundError checks if a HeadBucket error means the bucket is absent
func isBucketNotFoundError(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
