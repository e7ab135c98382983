/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the diagnostic logger
type Options struct {
	Verbose bool
	Colour  bool
	Output  io.Writer
}

// NewLogger returns a development console logger at debug level when verbose
// output is requested, and a no-op logger otherwise. Diagnostics go to stderr
// unless Output is set.
func NewLogger(opts Options) *zap.Logger {
	if !opts.Verbose {
		return zap.NewNop()
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	if opts.Colour {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(out),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
