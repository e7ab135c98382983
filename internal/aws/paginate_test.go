/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedSource serves fixed pages keyed by continuation token and records the
// tokens it was asked for.
type pagedSource struct {
	pages     [][]int
	failAt    int
	requested []string
}

func (p *pagedSource) fetch(ctx context.Context, token *string) ([]int, *string, error) {
	index := 0
	if token != nil {
		p.requested = append(p.requested, *token)
		for i := range p.pages {
			if pageToken(i) == *token {
				index = i
			}
		}
	} else {
		p.requested = append(p.requested, "")
	}

	if p.failAt >= 0 && index == p.failAt {
		return nil, nil, errors.New("throttled")
	}

	var next *string
	if index+1 < len(p.pages) {
		next = aws.String(pageToken(index + 1))
	}
	return p.pages[index], next, nil
}

func pageToken(i int) string {
	return string(rune('a' + i))
}

func TestFetchAll_ConcatenatesPagesInOrder(t *testing.T) {
	tests := []struct {
		name     string
		pages    [][]int
		expected []int
	}{
		{
			name:     "single page",
			pages:    [][]int{{1, 2, 3}},
			expected: []int{1, 2, 3},
		},
		{
			name:     "two pages",
			pages:    [][]int{{1, 2}, {3}},
			expected: []int{1, 2, 3},
		},
		{
			name:     "empty middle page",
			pages:    [][]int{{1}, {}, {2, 3}},
			expected: []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &pagedSource{pages: tt.pages, failAt: -1}

			page := FetchAll(context.Background(), source.fetch)

			require.NoError(t, page.Err)
			assert.True(t, page.Complete())
			assert.Equal(t, tt.expected, page.Items)
			assert.Len(t, source.requested, len(tt.pages))
		})
	}
}

func TestFetchAll_KeepsItemsWhenLaterPageFails(t *testing.T) {
	source := &pagedSource{pages: [][]int{{1, 2}, {3, 4}, {5}}, failAt: 2}

	page := FetchAll(context.Background(), source.fetch)

	require.Error(t, page.Err)
	assert.False(t, page.Complete())
	assert.Contains(t, page.Err.Error(), "throttled")
	assert.Equal(t, []int{1, 2, 3, 4}, page.Items)
}

func TestFetchAll_FirstPageFailureReturnsNoItems(t *testing.T) {
	source := &pagedSource{pages: [][]int{{1}}, failAt: 0}

	page := FetchAll(context.Background(), source.fetch)

	require.Error(t, page.Err)
	assert.Empty(t, page.Items)
}

func TestFetchAll_StopsOnRepeatedToken(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, token *string) ([]string, *string, error) {
		calls++
		return []string{"item"}, aws.String("same"), nil
	}

	page := FetchAll(context.Background(), fetch)

	require.NoError(t, page.Err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"item", "item"}, page.Items)
}

func TestFetchAll_EmptyTokenEndsListing(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, token *string) ([]string, *string, error) {
		calls++
		return []string{"only"}, aws.String(""), nil
	}

	page := FetchAll(context.Background(), fetch)

	require.NoError(t, page.Err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"only"}, page.Items)
}
