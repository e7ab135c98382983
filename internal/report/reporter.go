/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package report prints listings of account-wide resources.
package report

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/ui"
	"go.uber.org/zap"
)

// Reporter prints resource listings
type Reporter struct {
	printer *ui.Printer
	logger  *zap.Logger
}

// NewReporter creates a Reporter
func NewReporter(printer *ui.Printer, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{printer: printer, logger: logger}
}

// Stacks prints every stack that is not fully deleted
func (r *Reporter) Stacks(ctx context.Context, cfnOps aws.CloudFormationOperations) error {
	page := cfnOps.ListStacks(ctx)
	if err := r.checkPage("stacks", apperr.KindStack, len(page.Items), page.Err); err != nil {
		return err
	}

	for _, stack := range page.Items {
		r.printer.Heading("StackName", stack.Name)
		if stack.Description != "" {
			r.printer.Info("Description", stack.Description)
		}
		r.printer.Info("CreationTime", ui.FormatTime(stack.CreatedTime))
		if stack.UpdatedTime != nil {
			r.printer.Info("LastUpdatedTime", ui.FormatTime(stack.UpdatedTime))
		}
		r.printer.Info("StackStatus", r.printer.Styles().RenderStatus(string(stack.Status)))
	}
	return nil
}

// Exports prints every exported stack output
func (r *Reporter) Exports(ctx context.Context, cfnOps aws.CloudFormationOperations) error {
	page := cfnOps.ListExports(ctx)
	if err := r.checkPage("exports", apperr.KindStack, len(page.Items), page.Err); err != nil {
		return err
	}

	for _, export := range page.Items {
		r.printer.Heading("Export Name", export.Name)
		r.printer.Info("Export Value", export.Value)
		r.printer.Info("Exporting Stack Name", export.ExportingStackName())
		r.printer.Info("Exporting Stack ID", export.ExportingStackUUID())
	}
	return nil
}

// Buckets prints the caller's buckets
func (r *Reporter) Buckets(ctx context.Context, storage aws.StorageOperations) error {
	listing, err := storage.ListBuckets(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindBucket, err)
	}
	if err := r.checkPage("buckets", apperr.KindBucket, len(listing.Buckets), listing.Err); err != nil {
		return err
	}

	r.printer.Info("Buckets Owner", listing.Owner)
	for _, bucket := range listing.Buckets {
		r.printer.Heading("Bucket", bucket.Name)
		r.printer.Info("CreationDate", ui.FormatTime(bucket.CreationDate))
	}
	return nil
}

// LogGroups prints the region's CloudWatch log groups
func (r *Reporter) LogGroups(ctx context.Context, logs aws.LogOperations) error {
	page := logs.ListLogGroups(ctx)
	if err := r.checkPage("log groups", apperr.KindLogs, len(page.Items), page.Err); err != nil {
		return err
	}

	for _, group := range page.Items {
		r.printer.Heading("LogGroupName", group.Name)
		r.printer.Info("CreationTime", ui.FormatTime(group.CreationTime))
		r.printer.Info("StoredBytes", humanize.IBytes(uint64(max(group.StoredBytes, 0))))
		if group.RetentionInDays > 0 {
			r.printer.Info("RetentionInDays", group.RetentionInDays)
		} else {
			r.printer.Info("RetentionInDays", "Never expire")
		}
	}
	return nil
}

// Certificates prints the ACM certificates used by CloudFront, which always
// live in us-east-1
func (r *Reporter) Certificates(ctx context.Context, certs aws.CertificateOperations) error {
	r.printer.Note("AWS Region", aws.CertificateRegion, "(certs are in "+aws.CertificateRegion+")")

	page := certs.ListCertificates(ctx)
	if err := r.checkPage("certificates", apperr.KindCertificate, len(page.Items), page.Err); err != nil {
		return err
	}

	for _, cert := range page.Items {
		r.printer.Heading("DomainName", cert.DomainName)
		r.printer.Info("CertificateArn", cert.CertificateArn)
		if cert.Status != "" {
			r.printer.Info("Status", r.printer.Styles().RenderStatus(cert.Status))
		}
		if cert.NotAfter != nil {
			r.printer.Note("NotAfter", ui.FormatTime(cert.NotAfter), humanize.Time(*cert.NotAfter))
		}
	}
	return nil
}

// Account prints the principal behind the active credentials
func (r *Reporter) Account(ctx context.Context, identity aws.IdentityOperations) error {
	caller, err := identity.GetCallerIdentity(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindAccount, err)
	}

	r.printer.Info("UserName", caller.UserName())
	r.printer.Info("UserId", caller.UserID)
	r.printer.Info("AccountId", caller.Account)
	r.printer.Info("Arn", caller.Arn)
	return nil
}

// checkPage turns a listing that fetched nothing into a classified error. A
// listing that fetched something before failing is printed with a warning.
func (r *Reporter) checkPage(what string, kind apperr.Kind, fetched int, err error) error {
	if err == nil {
		if fetched == 0 {
			r.printer.Line(fmt.Sprintf("No %s found", what))
		}
		return nil
	}

	r.logger.Debug("listing incomplete", zap.String("listing", what), zap.Int("fetched", fetched), zap.Error(err))
	if fetched == 0 {
		return apperr.Wrap(kind, fmt.Errorf("failed to list %s: %w", what, err))
	}
	r.printer.Warning(fmt.Sprintf("Showing the first %d %s only: %v", fetched, what, err))
	return nil
}
