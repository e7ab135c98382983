/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/acm/types"
)

// CertificateRegion is where certificates for global distributions live
const CertificateRegion = "us-east-1"

// DefaultCertificateOperations lists certificates through ACM
type DefaultCertificateOperations struct {
	client ACMClient
}

// NewCertificateOperationsWithClient creates certificate operations with a custom client (for testing)
func NewCertificateOperationsWithClient(client ACMClient) *DefaultCertificateOperations {
	return &DefaultCertificateOperations{client: client}
}

// ListCertificates returns every certificate whose status is in CertificateStatuses
func (c *DefaultCertificateOperations) ListCertificates(ctx context.Context) Page[Certificate] {
	statuses := make([]types.CertificateStatus, len(CertificateStatuses))
	for i, s := range CertificateStatuses {
		statuses[i] = types.CertificateStatus(s)
	}

	return FetchAll(ctx, func(ctx context.Context, token *string) ([]Certificate, *string, error) {
		result, err := c.client.ListCertificates(ctx, &acm.ListCertificatesInput{
			CertificateStatuses: statuses,
			NextToken:           token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list certificates: %w", err)
		}

		certs := make([]Certificate, 0, len(result.CertificateSummaryList))
		for _, summary := range result.CertificateSummaryList {
			certs = append(certs, Certificate{
				DomainName:     aws.ToString(summary.DomainName),
				CertificateArn: aws.ToString(summary.CertificateArn),
				Status:         string(summary.Status),
				NotAfter:       summary.NotAfter,
			})
		}
		return certs, result.NextToken, nil
	})
}
