/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Command docgen writes the CLI reference as Markdown, one page per command.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	stackscmd "github.com/orien/stacks/cmd"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	outputDir := filepath.Join("docs", "reference", "cli")
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}
	if err := cleanMarkdown(outputDir); err != nil {
		log.Fatalf("clean output directory: %v", err)
	}

	root := stackscmd.RootCommand()
	disableAutoGenTag(root)

	if err := doc.GenMarkdownTreeCustom(root, outputDir, frontMatter, linkHandler); err != nil {
		log.Fatalf("generate markdown documentation: %v", err)
	}
}

// cleanMarkdown removes pages left from commands that no longer exist
func cleanMarkdown(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func disableAutoGenTag(cmd *cobra.Command) {
	cmd.DisableAutoGenTag = true
	for _, child := range cmd.Commands() {
		disableAutoGenTag(child)
	}
}

func frontMatter(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return fmt.Sprintf("---\ntitle: %q\n---\n\n", strings.ReplaceAll(name, "_", " "))
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ToLower(strings.ReplaceAll(base, " ", "-"))
}
