/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/report"
	"github.com/spf13/cobra"
)

func newAccountCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the account and principal behind the active credentials",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}

			identity, err := env.factory.Identity(cmd.Context())
			if err != nil {
				return apperr.Wrap(apperr.KindAccount, err)
			}
			return report.NewReporter(env.printer, env.logger).Account(cmd.Context(), identity)
		},
	}
}

func newCertsCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "certs",
		Short: "List ACM certificates in us-east-1",
		Long: `List ACM certificates. Certificates are always read from us-east-1,
where CloudFront expects them, whatever region is configured.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}

			certs, err := env.factory.Certificates(cmd.Context())
			if err != nil {
				return apperr.Wrap(apperr.KindCertificate, err)
			}
			return report.NewReporter(env.printer, env.logger).Certificates(cmd.Context(), certs)
		},
	}
}
