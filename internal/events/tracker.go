/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package events

import (
	"slices"
	"time"

	"github.com/orien/stacks/internal/aws"
)

// Tracker remembers which stack events have already been shown for one
// operation. It is not safe for concurrent use; a single poll loop owns it.
type Tracker struct {
	seen map[string]struct{}
}

// NewTracker creates an empty Tracker
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// MarkAndFilter returns the events whose ids have not been seen before, in
// their original order, and records them as seen. An id repeated within the
// batch is returned once.
func (t *Tracker) MarkAndFilter(batch []aws.StackEvent) []aws.StackEvent {
	fresh := make([]aws.StackEvent, 0, len(batch))
	for _, event := range batch {
		if _, ok := t.seen[event.EventId]; ok {
			continue
		}
		t.seen[event.EventId] = struct{}{}
		fresh = append(fresh, event)
	}
	return fresh
}

// Seen reports whether an event id has been recorded
func (t *Tracker) Seen(eventID string) bool {
	_, ok := t.seen[eventID]
	return ok
}

// Len returns the number of recorded ids
func (t *Tracker) Len() int {
	return len(t.seen)
}

// SortByTime orders events oldest first. Events sharing a timestamp keep
// their relative order.
func SortByTime(batch []aws.StackEvent) {
	slices.SortStableFunc(batch, func(a, b aws.StackEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}

// Since returns the events stamped at or after start
func Since(batch []aws.StackEvent, start time.Time) []aws.StackEvent {
	result := make([]aws.StackEvent, 0, len(batch))
	for _, event := range batch {
		if !event.Timestamp.Before(start) {
			result = append(result, event)
		}
	}
	return result
}
