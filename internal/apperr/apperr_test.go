/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitOK},
		{"unclassified", errors.New("boom"), ExitGeneric},
		{"usage", Usage("bad args"), ExitUsage},
		{"template", Template("missing.yaml not found"), ExitTemplate},
		{"stack", Stack("web-app does not exist"), ExitStack},
		{"upload", Wrap(KindUpload, errors.New("access denied")), ExitUpload},
		{"account", Wrap(KindAccount, errors.New("expired token")), ExitAccount},
		{"certificate", Wrap(KindCertificate, errors.New("throttled")), ExitCertificate},
		{"bucket", Wrap(KindBucket, errors.New("not empty")), ExitBucket},
		{"logs", Wrap(KindLogs, errors.New("not found")), ExitLogs},
		{"wrapped classified", fmt.Errorf("deploy: %w", Stack("failed")), ExitStack},
		{"unknown kind", &Error{Kind: "Other", Err: errors.New("x")}, ExitGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestWrap_KeepsOriginalKind(t *testing.T) {
	inner := Template("infra.yaml not found")
	wrapped := Wrap(KindUpload, fmt.Errorf("upload: %w", inner))

	assert.Equal(t, KindTemplate, KindOf(wrapped))
	assert.Nil(t, Wrap(KindUpload, nil))
}

func TestError_Message(t *testing.T) {
	err := Stack("%s does not exist", "web-app")

	assert.Equal(t, "StackError: web-app does not exist", err.Error())
	assert.True(t, Is(err, KindStack))
	assert.False(t, Is(err, KindTemplate))
	assert.False(t, Is(nil, KindStack))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindUpload, cause)

	assert.ErrorIs(t, err, cause)
}
