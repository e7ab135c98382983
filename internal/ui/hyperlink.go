/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package ui

import (
	"fmt"
	"strings"
)

// CloudFormationDocsBaseURL is the base URL for CloudFormation resource documentation
const CloudFormationDocsBaseURL = "https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/"

// ResourceTypeURL returns the CloudFormation documentation URL for a resource
// type such as "AWS::S3::Bucket", or "" when the type is not of the form
// Vendor::Service::Resource.
func ResourceTypeURL(resourceType string) string {
	if resourceType == "" {
		return ""
	}

	parts := strings.Split(resourceType, "::")
	if len(parts) != 3 {
		return ""
	}

	service := strings.ToLower(parts[1])
	resource := strings.ToLower(parts[2])

	return CloudFormationDocsBaseURL + fmt.Sprintf("aws-resource-%s-%s.html", service, resource)
}

// Hyperlink wraps text with terminal hyperlink escape codes (OSC 8).
// Terminals without hyperlink support display the text unchanged.
func Hyperlink(url, text string) string {
	if url == "" || text == "" {
		return text
	}

	// OSC 8 format: \033]8;;URL\033\\TEXT\033]8;;\033\\
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// HyperlinkResourceType links a resource type to its documentation page
func HyperlinkResourceType(resourceType string) string {
	url := ResourceTypeURL(resourceType)
	if url == "" {
		return resourceType
	}
	return Hyperlink(url, resourceType)
}
