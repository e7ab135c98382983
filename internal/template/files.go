/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package template locates, renders and converts CloudFormation templates
// on the local filesystem.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/orien/stacks/internal/apperr"
)

// templateNamePattern matches file names picked up by directory uploads
var templateNamePattern = regexp.MustCompile(`[^\s](yml|yaml)$`)

// CheckFile verifies that path names an existing regular file
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.Template("%s not found", path)
		}
		return apperr.Template("%s: %v", path, err)
	}
	if info.IsDir() {
		return apperr.Template("%s is a directory, use --dir", path)
	}
	return nil
}

// CheckDir verifies that path names an existing directory
func CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.Template("%s not found", path)
		}
		return apperr.Template("%s: %v", path, err)
	}
	if !info.IsDir() {
		return apperr.Template("%s is a file, remove --dir", path)
	}
	return nil
}

// StackName derives a stack name from a template path: the file name
// without directory or extension.
func StackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsTemplateFile reports whether a file name looks like a YAML template
func IsTemplateFile(name string) bool {
	return templateNamePattern.MatchString(name)
}

// ListTemplates returns the names of the YAML templates directly inside dir,
// sorted
func ListTemplates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperr.Template("failed to read directory %s: %v", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsTemplateFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadFile reads a template, classifying failures as template errors
func ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindTemplate, fmt.Errorf("failed to read template %s: %w", path, err))
	}
	return content, nil
}
