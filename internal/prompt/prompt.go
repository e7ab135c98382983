/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter defines the interface for user prompting
type Prompter interface {
	Confirm(message string) (bool, error)
}

// StdinPrompter implements Prompter using standard input
type StdinPrompter struct {
	input  io.Reader
	output io.Writer
}

// NewStdinPrompter creates a new prompter that reads from stdin
func NewStdinPrompter() *StdinPrompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

// NewPrompter creates a prompter over arbitrary streams
func NewPrompter(input io.Reader, output io.Writer) *StdinPrompter {
	return &StdinPrompter{input: input, output: output}
}

// Confirm asks a yes/no question. Only "y" or "yes" confirm; EOF is a no.
func (p *StdinPrompter) Confirm(message string) (bool, error) {
	if _, err := fmt.Fprintf(p.output, "%s[y/N]: ", withTrailingSpace(message)); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	scanner := bufio.NewScanner(p.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read user input: %w", err)
		}
		return false, nil
	}

	return isYes(scanner.Text()), nil
}

func isYes(response string) bool {
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func withTrailingSpace(message string) string {
	if message == "" || strings.HasSuffix(message, " ") {
		return message
	}
	return message + " "
}

// defaultPrompter is the package-level default prompter
var defaultPrompter Prompter = NewStdinPrompter()

// SetPrompter allows injection of a custom prompter (for testing)
func SetPrompter(p Prompter) {
	defaultPrompter = p
}

// GetDefaultPrompter returns the current default prompter (for testing)
func GetDefaultPrompter() Prompter {
	return defaultPrompter
}

// Confirm asks for confirmation using the default prompter
func Confirm(message string) (bool, error) {
	return defaultPrompter.Confirm(message)
}
