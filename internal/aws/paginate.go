/*
Copyright © 2025 Stacks Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
)

// Page is the result of fetching every page of a listing.
//
// Fetching is best effort: when a page request fails the items gathered so far
// are kept and the failure is recorded in Err. Callers decide whether a partial
// result is acceptable; an empty Items slice with a non-nil Err is not proof
// that nothing exists.
type Page[T any] struct {
	Items []T
	Err   error
}

// Complete reports whether every page was fetched
func (p Page[T]) Complete() bool {
	return p.Err == nil
}

// PageFetcher fetches one page starting at token (nil for the first page) and
// returns its items and the continuation token for the next page.
type PageFetcher[T any] func(ctx context.Context, token *string) ([]T, *string, error)

// FetchAll follows continuation tokens until the last page and concatenates
// every page's items in order. A nil or empty token ends the listing, as does
// a token identical to the one just sent.
func FetchAll[T any](ctx context.Context, fetch PageFetcher[T]) Page[T] {
	var result Page[T]
	var token *string

	for {
		items, next, err := fetch(ctx, token)
		if err != nil {
			result.Err = err
			return result
		}
		result.Items = append(result.Items, items...)

		if next == nil || *next == "" {
			return result
		}
		if token != nil && *next == *token {
			return result
		}
		token = next
	}
}
