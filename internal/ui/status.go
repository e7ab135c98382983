/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type tone int

const (
	tonePlain tone = iota
	toneSuccess
	toneProgress
	toneCaution
	toneRemoval
	toneFailure
)

// statusTones lists statuses whose colour differs from what their suffix suggests
var statusTones = map[string]tone{
	"CREATE_IN_PROGRESS":                           toneProgress,
	"CREATE_COMPLETE":                              toneSuccess,
	"CREATE_FAILED":                                toneFailure,
	"DELETE_IN_PROGRESS":                           toneRemoval,
	"DELETE_COMPLETE":                              toneSuccess,
	"DELETE_FAILED":                                toneFailure,
	"DELETE_SKIPPED":                               toneCaution,
	"ROLLBACK_FAILED":                              toneFailure,
	"ROLLBACK_IN_PROGRESS":                         toneCaution,
	"ROLLBACK_COMPLETE":                            toneFailure,
	"UPDATE_IN_PROGRESS":                           toneProgress,
	"UPDATE_COMPLETE":                              toneSuccess,
	"UPDATE_COMPLETE_CLEANUP_IN_PROGRESS":          toneSuccess,
	"UPDATE_ROLLBACK_IN_PROGRESS":                  toneCaution,
	"UPDATE_ROLLBACK_COMPLETE_CLEANUP_IN_PROGRESS": toneCaution,
	"UPDATE_ROLLBACK_FAILED":                       toneFailure,
	"UPDATE_ROLLBACK_COMPLETE":                     toneSuccess,
	"UPDATE_FAILED":                                toneFailure,
}

func toneOf(status string) tone {
	if t, ok := statusTones[status]; ok {
		return t
	}

	switch {
	case strings.HasSuffix(status, "_FAILED"):
		return toneFailure
	case strings.HasSuffix(status, "_COMPLETE"):
		return toneSuccess
	case strings.HasSuffix(status, "_IN_PROGRESS"):
		return toneProgress
	default:
		return tonePlain
	}
}

// Status returns the style for a stack, resource, upload or certificate status
func (s *Styles) Status(status string) lipgloss.Style {
	switch toneOf(status) {
	case toneSuccess:
		return s.Success
	case toneProgress:
		return s.Progress
	case toneCaution:
		return s.Caution
	case toneRemoval:
		return s.Removal
	case toneFailure:
		return s.Error
	default:
		return lipgloss.NewStyle()
	}
}

// RenderStatus renders status in its colour
func (s *Styles) RenderStatus(status string) string {
	if status == "" {
		return ""
	}
	return s.Status(status).Render(status)
}
