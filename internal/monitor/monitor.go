/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package monitor streams stack events to the console while a stack
// operation runs and returns once the control plane reports it finished.
package monitor

import (
	"context"
	"time"

	"github.com/orien/stacks/internal/apperr"
	"github.com/orien/stacks/internal/aws"
	"github.com/orien/stacks/internal/events"
	"github.com/orien/stacks/internal/model"
	"github.com/orien/stacks/internal/ui"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultInterval is the time between event polls
	DefaultInterval = 5 * time.Second

	// DefaultMaxWait bounds how long to wait for an operation to finish
	DefaultMaxWait = time.Hour
)

// EventSource is the part of the CloudFormation API the monitor reads
type EventSource interface {
	DescribeStackEvents(ctx context.Context, stackName string) aws.Page[aws.StackEvent]
	WaitForStackOperation(ctx context.Context, stackName string, kind model.OperationKind, maxWait time.Duration) error
}

// Monitor follows a stack operation to completion
type Monitor struct {
	source   EventSource
	printer  *ui.Printer
	logger   *zap.Logger
	interval time.Duration
	maxWait  time.Duration
}

// Option configures a Monitor
type Option func(*Monitor)

// WithInterval sets the poll interval
func WithInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithMaxWait sets the longest time to wait for the operation
func WithMaxWait(maxWait time.Duration) Option {
	return func(m *Monitor) {
		if maxWait > 0 {
			m.maxWait = maxWait
		}
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Monitor
func New(source EventSource, printer *ui.Printer, opts ...Option) *Monitor {
	m := &Monitor{
		source:   source,
		printer:  printer,
		logger:   zap.NewNop(),
		interval: DefaultInterval,
		maxWait:  DefaultMaxWait,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Watch prints the events of op's stack recorded from startedAt onward until
// the operation reaches a terminal state. stackID is used for event and status
// queries; pass the stack ARN so a deleted stack can still be described.
//
// Polling and waiting run concurrently. When the wait ends, polling stops, one
// final poll prints anything recorded since the last one, and Watch returns.
func (m *Monitor) Watch(ctx context.Context, op *model.Operation, stackID string, startedAt time.Time) error {
	if stackID == "" {
		stackID = op.StackName
	}
	session := m.NewSession(op, stackID, startedAt)

	m.logger.Debug("watching stack operation",
		zap.String("stack", op.StackName),
		zap.String("stack_id", stackID),
		zap.String("operation", string(op.Kind)),
		zap.Duration("interval", m.interval),
		zap.Duration("max_wait", m.maxWait))

	g, gctx := errgroup.WithContext(ctx)
	pollCtx, stopPolling := context.WithCancel(gctx)
	defer stopPolling()

	g.Go(func() error {
		defer stopPolling()
		return m.source.WaitForStackOperation(gctx, stackID, op.Kind, m.maxWait)
	})

	g.Go(func() error {
		session.Poll(pollCtx, m.interval)
		return nil
	})

	err := g.Wait()

	if ctx.Err() == nil {
		session.Tick(ctx)
	}

	if err != nil {
		m.logger.Debug("stack operation did not succeed", zap.String("stack", op.StackName), zap.Error(err))
		return apperr.Wrap(apperr.KindStack, err)
	}
	return nil
}

// Session holds the state of one watched operation. Only one goroutine may
// call its methods at a time.
type Session struct {
	source    EventSource
	printer   *ui.Printer
	logger    *zap.Logger
	op        *model.Operation
	stackID   string
	startedAt time.Time
	tracker   *events.Tracker
}

// NewSession creates a session that prints op's events recorded from startedAt
func (m *Monitor) NewSession(op *model.Operation, stackID string, startedAt time.Time) *Session {
	return &Session{
		source:    m.source,
		printer:   m.printer,
		logger:    m.logger,
		op:        op,
		stackID:   stackID,
		startedAt: startedAt,
		tracker:   events.NewTracker(),
	}
}

// Poll ticks every interval until ctx is done
func (s *Session) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick fetches the stack's events, prints those not shown before in time
// order, and returns how many it printed. A partial fetch is logged and
// dropped so events are never printed out of time order.
func (s *Session) Tick(ctx context.Context) int {
	page := s.source.DescribeStackEvents(ctx, s.stackID)
	if page.Err != nil {
		s.logger.Debug("could not fetch every stack event page",
			zap.String("stack", s.op.StackName),
			zap.Int("fetched", len(page.Items)),
			zap.Error(page.Err))
		return 0
	}

	fresh := s.tracker.MarkAndFilter(page.Items)
	events.SortByTime(fresh)

	printed := 0
	for _, event := range events.Since(fresh, s.startedAt) {
		s.printer.Event(s.op.Kind.Action(), s.op.StackName, event)
		printed++
	}
	return printed
}
