/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package ui

import (
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
)

// Styles contains the styles used for console output
type Styles struct {
	Timestamp lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Subtle    lipgloss.Style

	// Status styles
	Success  lipgloss.Style
	Progress lipgloss.Style
	Caution  lipgloss.Style
	Removal  lipgloss.Style
	Error    lipgloss.Style

	// Whether colours are enabled
	UseColour bool
}

// NewStyles creates styles using Fang's color scheme so command output
// matches help and error rendering.
//
// Color Mapping from Fang ColorScheme:
//   - Comment      -> timestamps, subtle text
//   - Argument     -> labels
//   - Command      -> stack names and highlighted values
//   - Flag         -> completed statuses
//   - ErrorDetails -> failed statuses, errors
func NewStyles(useColour bool) *Styles {
	s := &Styles{UseColour: useColour}

	if !useColour {
		plainStyle := lipgloss.NewStyle()

		s.Timestamp = plainStyle
		s.Label = plainStyle
		s.Highlight = plainStyle
		s.Subtle = plainStyle
		s.Success = plainStyle
		s.Progress = plainStyle
		s.Caution = plainStyle
		s.Removal = plainStyle
		s.Error = plainStyle
		return s
	}

	hasDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
	lightDark := lipgloss.LightDark(hasDark)
	scheme := fang.DefaultColorScheme(lightDark)

	s.Timestamp = lipgloss.NewStyle().
		Foreground(scheme.Comment)

	s.Label = lipgloss.NewStyle().
		Foreground(scheme.Argument).
		Bold(true)

	s.Highlight = lipgloss.NewStyle().
		Foreground(scheme.Command)

	s.Subtle = lipgloss.NewStyle().
		Foreground(scheme.Comment).
		Italic(true)

	s.Success = lipgloss.NewStyle().
		Foreground(scheme.Flag)

	// In-progress and rollback statuses use plain ANSI yellow, which reads as
	// "pending" on any background
	s.Progress = lipgloss.NewStyle().
		Foreground(lightDark(lipgloss.Color("3"), lipgloss.Color("11"))).
		Bold(true)

	s.Caution = lipgloss.NewStyle().
		Foreground(lightDark(lipgloss.Color("3"), lipgloss.Color("11")))

	s.Removal = lipgloss.NewStyle().
		Foreground(lightDark(lipgloss.Color("1"), lipgloss.Color("9")))

	s.Error = lipgloss.NewStyle().
		Foreground(scheme.ErrorDetails).
		Bold(true)

	return s
}

// ShouldUseColour determines if colour output should be used
func ShouldUseColour() bool {
	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check TERM environment variable
	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	// Check if stdout is a terminal
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	// Check if it's a character device (terminal)
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
