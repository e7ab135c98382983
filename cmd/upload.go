/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/template"
	"github.com/orien/stacks/internal/upload"
	"github.com/spf13/cobra"
)

// uploader can be injected for testing
var uploader upload.Uploader

// SetUploader allows injection of an uploader (for testing)
func SetUploader(u upload.Uploader) {
	uploader = u
}

// getUploader returns the injected uploader, or one writing through env's S3 operations
func getUploader(ctx context.Context, env *environment) (upload.Uploader, error) {
	if uploader != nil {
		return uploader, nil
	}

	storage, err := env.factory.Storage(ctx, env.config.Region)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpload, err)
	}
	return upload.NewTemplateUploader(storage, env.printer, env.config.Region, upload.WithLogger(env.logger)), nil
}

func newUploadCmd(global *globalOptions) *cobra.Command {
	var dir bool

	uploadCmd := &cobra.Command{
		Use:   "upload <template>",
		Short: "Upload a template, or a directory of templates, to the template bucket",
		Long: `Upload templates to the template bucket, creating the bucket if needed.

With --dir every .yml and .yaml file directly inside the directory is
uploaded. Every file is attempted and all failures are reported together.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			check := template.CheckFile
			if dir {
				check = template.CheckDir
			}
			if err := check(path); err != nil {
				return err
			}

			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			identity, err := env.factory.Identity(ctx)
			if err != nil {
				return apperr.Wrap(apperr.KindAccount, err)
			}
			bucket, err := upload.ResolveBucket(ctx, identity, env.config.Bucket, env.config.Region)
			if err != nil {
				return err
			}
			env.printer.Info("Bucket", bucket)

			u, err := getUploader(ctx, env)
			if err != nil {
				return err
			}
			if err := u.EnsureBucket(ctx, bucket); err != nil {
				return err
			}

			if dir {
				_, err = u.UploadDir(ctx, bucket, path)
				return err
			}
			_, err = u.UploadFile(ctx, bucket, path)
			return err
		},
	}

	uploadCmd.Flags().BoolVar(&dir, "dir", false, "upload every template in a directory")

	return uploadCmd
}
