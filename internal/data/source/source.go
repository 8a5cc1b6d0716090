// Package source abstracts the remote log service the watcher reads from.
package source

import (
	"context"

	"github.com/penwyp/cloudwatcher/internal/core/model"
)

// FetchRequest parameterizes one page fetch for a log group.
type FetchRequest struct {
	Group        string
	StreamPrefix string
	// StartTime is a millisecond epoch floor; the source returns only events
	// at or after it. Zero means no floor.
	StartTime int64
	// NextToken continues a paginated fetch; empty starts a new one.
	NextToken string
	// Limit caps the page size. Zero lets the source pick its default.
	Limit int
}

// FetchPage is one page of raw events plus continuation state.
type FetchPage struct {
	Events []model.RawEvent
	// NextToken is non-empty when more pages remain.
	NextToken string
}

// Source is the read-side client for a remote log service. Implementations
// may return duplicate events across calls; callers deduplicate.
type Source interface {
	// ListGroups enumerates the log groups visible to the caller.
	ListGroups(ctx context.Context) ([]model.GroupDescriptor, error)

	// FetchPage returns one page of events for the request. Pagination is
	// drained by re-issuing the request with the returned NextToken until it
	// comes back empty.
	FetchPage(ctx context.Context, req FetchRequest) (FetchPage, error)
}

// DrainPages fetches every page for the request, following continuation
// tokens until the source reports none. On error the pages fetched so far are
// discarded: a round is all-or-nothing so cursors never advance past a gap.
func DrainPages(ctx context.Context, src Source, req FetchRequest) ([][]model.RawEvent, error) {
	var pages [][]model.RawEvent
	for {
		page, err := src.FetchPage(ctx, req)
		if err != nil {
			return nil, err
		}
		if len(page.Events) > 0 {
			pages = append(pages, page.Events)
		}
		if page.NextToken == "" {
			return pages, nil
		}
		req.NextToken = page.NextToken
	}
}
