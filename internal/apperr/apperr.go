/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package apperr classifies command failures so the process can exit with a
// code that scripts can branch on.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a failure category
type Kind string

const (
	KindUsage       Kind = "UsageError"
	KindTemplate    Kind = "TemplateError"
	KindStack       Kind = "StackError"
	KindUpload      Kind = "UploadError"
	KindAccount     Kind = "AccountError"
	KindCertificate Kind = "CertificateError"
	KindBucket      Kind = "BucketError"
	KindLogs        Kind = "LogsError"
)

// Exit codes per kind. ExitGeneric covers anything unclassified.
const (
	ExitOK          = 0
	ExitGeneric     = 1
	ExitUsage       = 2
	ExitTemplate    = 3
	ExitStack       = 4
	ExitUpload      = 5
	ExitAccount     = 6
	ExitCertificate = 7
	ExitBucket      = 8
	ExitLogs        = 9
)

var exitCodes = map[Kind]int{
	KindUsage:       ExitUsage,
	KindTemplate:    ExitTemplate,
	KindStack:       ExitStack,
	KindUpload:      ExitUpload,
	KindAccount:     ExitAccount,
	KindCertificate: ExitCertificate,
	KindBucket:      ExitBucket,
	KindLogs:        ExitLogs,
}

// Error is a classified failure
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for this kind
func (e *Error) ExitCode() int {
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return ExitGeneric
}

// New creates a classified error from a formatted message
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies an existing error. A nil error stays nil, and an error that
// is already classified keeps its original kind.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// Template reports a missing or unreadable template
func Template(format string, args ...any) *Error {
	return New(KindTemplate, format, args...)
}

// Stack reports a stack that is absent or an operation that failed
func Stack(format string, args ...any) *Error {
	return New(KindStack, format, args...)
}

// Usage reports bad command-line input
func Usage(format string, args ...any) *Error {
	return New(KindUsage, format, args...)
}

// KindOf returns the kind of a classified error, or "" if err is unclassified
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is classified with the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps any error to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitGeneric
}
