/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/orien/stacks/internal/aws"
)

// TimeFormat is the layout of the timestamp leading each progress line
const TimeFormat = "15:04:05"

// DateTimeFormat is the layout for creation and update times in reports
const DateTimeFormat = "January 2 2006, 3:04:05 pm"

// Printer writes user-facing output. It is safe for concurrent use.
type Printer struct {
	out    io.Writer
	styles *Styles
	now    func() time.Time
	mu     sync.Mutex
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, styles *Styles) *Printer {
	if styles == nil {
		styles = NewStyles(false)
	}
	return &Printer{
		out:    out,
		styles: styles,
		now:    time.Now,
	}
}

// SetClock replaces the clock used to stamp lines
func (p *Printer) SetClock(now func() time.Time) {
	p.now = now
}

// Styles returns the styles the printer renders with
func (p *Printer) Styles() *Styles {
	return p.styles
}

// Info prints "Label: value"
func (p *Printer) Info(label string, value any) {
	p.println(p.styles.Label.Render(label+":"), fmt.Sprint(value))
}

// Note prints "Label: value (note)" with the note de-emphasised
func (p *Printer) Note(label string, value any, note string) {
	p.println(p.styles.Label.Render(label+":"), fmt.Sprint(value), p.styles.Subtle.Render(note))
}

// Heading prints a blank line followed by "Label: value" with the value highlighted,
// separating entries of a report
func (p *Printer) Heading(label, value string) {
	p.println()
	p.println(p.styles.Label.Render(label+":"), p.styles.Highlight.Render(value))
}

// Blank prints an empty line
func (p *Printer) Blank() {
	p.println()
}

// Line prints a line stamped with the current time
func (p *Printer) Line(parts ...string) {
	p.stamped(p.now(), parts...)
}

// StackLine prints a stamped "<action> <stack> <detail...>" line
func (p *Printer) StackLine(action, stackName string, detail ...string) {
	parts := append([]string{action, p.styles.Highlight.Render(stackName)}, detail...)
	p.Line(parts...)
}

// Event prints a stack event stamped with the time the control plane recorded it
func (p *Printer) Event(action, stackName string, event aws.StackEvent) {
	resourceType := event.ResourceType
	if p.styles.UseColour {
		resourceType = HyperlinkResourceType(resourceType)
	}

	p.stamped(event.Timestamp,
		action,
		p.styles.Highlight.Render(stackName),
		resourceType,
		event.LogicalResourceId,
		p.styles.RenderStatus(event.ResourceStatus),
		event.ResourceStatusReason,
	)
}

// Warning prints a stamped warning
func (p *Printer) Warning(message string) {
	p.Line(p.styles.Caution.Render(message))
}

// Error prints a stamped error
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	p.Line(p.styles.Error.Render(err.Error()))
}

func (p *Printer) stamped(at time.Time, parts ...string) {
	stamp := p.styles.Timestamp.Render(at.Local().Format(TimeFormat))
	p.println(append([]string{stamp}, parts...)...)
}

// println joins the non-empty parts with single spaces
func (p *Printer) println(parts ...string) {
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			fields = append(fields, part)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, strings.Join(fields, " "))
}

// FormatTime renders an optional time for reports
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format(DateTimeFormat)
}
