/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/orien/stacks/cmd"
	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/version"
)

func main() {
	// An interrupt stops polling; the remote operation carries on.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := fang.Execute(ctx, cmd.RootCommand(),
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.GitCommit),
		fang.WithErrorHandler(cmd.ErrorHandler),
	)
	stop()
	os.Exit(apperr.ExitCode(err))
}
