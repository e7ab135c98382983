/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package upload writes templates to the S3 bucket CloudFormation reads them from.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/model"
	"github.com/orien/stacks/internal/template"
	"github.com/orien/stacks/internal/ui"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the uploads in flight for a directory
const DefaultConcurrency = 8

// Uploader defines the interface for template upload operations
type Uploader interface {
	EnsureBucket(ctx context.Context, bucket string) error
	UploadBody(ctx context.Context, bucket, key string, body []byte) error
	UploadFile(ctx context.Context, bucket, path string) (string, error)
	UploadDir(ctx context.Context, bucket, dir string) ([]string, error)
}

// TemplateUploader implements Uploader over S3
type TemplateUploader struct {
	storage     aws.StorageOperations
	printer     *ui.Printer
	logger      *zap.Logger
	region      string
	concurrency int
}

// Option configures a TemplateUploader
type Option func(*TemplateUploader)

// WithConcurrency sets how many files of a directory upload at once
func WithConcurrency(n int) Option {
	return func(u *TemplateUploader) {
		if n > 0 {
			u.concurrency = n
		}
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(u *TemplateUploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewTemplateUploader creates an uploader whose buckets live in region
func NewTemplateUploader(storage aws.StorageOperations, printer *ui.Printer, region string, opts ...Option) *TemplateUploader {
	u := &TemplateUploader{
		storage:     storage,
		printer:     printer,
		logger:      zap.NewNop(),
		region:      region,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// EnsureBucket creates the bucket when it does not exist yet
func (u *TemplateUploader) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := u.storage.BucketExists(ctx, bucket)
	if err != nil {
		return apperr.Wrap(apperr.KindUpload, err)
	}
	if exists {
		return nil
	}

	u.logger.Debug("creating template bucket", zap.String("bucket", bucket), zap.String("region", u.region))
	if err := u.storage.CreateBucket(ctx, bucket, u.region); err != nil {
		return apperr.Wrap(apperr.KindUpload, err)
	}
	u.printer.StackLine("Creating", bucket, "AWS::S3::Bucket", u.printer.Styles().RenderStatus("CREATE_COMPLETE"))
	return nil
}

// UploadBody writes body to bucket under key
func (u *TemplateUploader) UploadBody(ctx context.Context, bucket, key string, body []byte) error {
	u.logger.Debug("uploading template", zap.String("bucket", bucket), zap.String("key", key), zap.Int("bytes", len(body)))
	if err := u.storage.PutObject(ctx, bucket, key, bytes.NewReader(body)); err != nil {
		return apperr.Wrap(apperr.KindUpload, err)
	}
	u.printer.StackLine("Uploading", key, fmt.Sprintf("s3://%s/%s", bucket, key), u.printer.Styles().RenderStatus("UPLOAD_COMPLETE"))
	return nil
}

// UploadFile writes the template at path to bucket, keyed by its base name
func (u *TemplateUploader) UploadFile(ctx context.Context, bucket, path string) (string, error) {
	if err := template.CheckFile(path); err != nil {
		return "", err
	}
	body, err := template.ReadFile(path)
	if err != nil {
		return "", err
	}
	key := filepath.Base(path)
	return key, u.UploadBody(ctx, bucket, key, body)
}

// UploadDir writes every YAML template directly inside dir to bucket. All
// files are attempted; every failure is returned together as one upload
// error. The keys written are returned in name order.
func (u *TemplateUploader) UploadDir(ctx context.Context, bucket, dir string) ([]string, error) {
	if err := template.CheckDir(dir); err != nil {
		return nil, err
	}
	names, err := template.ListTemplates(dir)
	if err != nil {
		return nil, err
	}

	errs := make([]error, len(names))
	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, name := range names {
		g.Go(func() error {
			body, err := template.ReadFile(filepath.Join(dir, name))
			if err == nil {
				err = u.UploadBody(ctx, bucket, name, body)
			}
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	// failures are collected per file in errs
	_ = g.Wait()

	uploaded := make([]string, 0, len(names))
	for i, name := range names {
		if errs[i] == nil {
			uploaded = append(uploaded, name)
		}
	}

	if joined := errors.Join(errs...); joined != nil {
		return uploaded, &apperr.Error{Kind: apperr.KindUpload, Err: joined}
	}
	return uploaded, nil
}

// ResolveBucket returns bucket when set, otherwise the account's default
// template bucket for region
func ResolveBucket(ctx context.Context, identity aws.IdentityOperations, bucket, region string) (string, error) {
	if bucket != "" {
		return bucket, nil
	}
	caller, err := identity.GetCallerIdentity(ctx)
	if err != nil {
		return "", apperr.Wrap(apperr.KindAccount, err)
	}
	return model.DefaultBucketName(caller.Account, region), nil
}
