// Package merge folds the raw pages fetched for one log group during a poll
// round into an ordered, deduplicated sequence of new events.
package merge

import (
	"sort"

	"github.com/penwyp/cloudwatcher/internal/core/cursor"
	"github.com/penwyp/cloudwatcher/internal/core/model"
)

// GroupState holds the read position for one log group. Streams within a
// group have independent identifier namespaces and skewed clocks, so each
// stream keeps its own cursor rather than sharing one per group.
type GroupState struct {
	cursors map[string]cursor.Cursor
}

// NewGroupState returns an empty state: the first merge treats every event as new.
func NewGroupState() *GroupState {
	return &GroupState{cursors: make(map[string]cursor.Cursor)}
}

// Merge flattens the round's pages, advances each stream's cursor, and
// returns the not-yet-emitted events ordered by (timestamp, stream, id).
// Events whose identifier appeared in an earlier round for the same stream
// are dropped; duplicates across overlapping pages collapse to one emission.
// Callers must invoke Merge only for rounds whose fetch fully succeeded, so
// that a failed round leaves the state untouched.
func (s *GroupState) Merge(pages [][]model.RawEvent) []model.RawEvent {
	byStream := make(map[string][]model.RawEvent)
	for _, page := range pages {
		for _, e := range page {
			byStream[e.Stream] = append(byStream[e.Stream], e)
		}
	}

	var out []model.RawEvent
	for stream, events := range byStream {
		next, fresh := cursor.Advance(s.cursors[stream], events)
		s.cursors[stream] = next
		out = append(out, fresh...)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		if out[i].Stream != out[j].Stream {
			return out[i].Stream < out[j].Stream
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// StartHint returns a millisecond timestamp usable as the server-side floor
// for the next fetch: the smallest high-water mark across known streams.
// Returns 0 when no stream has been observed yet, meaning no floor beyond the
// configured lookback can be assumed (the group may grow new streams at any
// time, and the floor must not skip another stream's backlog).
func (s *GroupState) StartHint() int64 {
	hint := int64(0)
	for _, c := range s.cursors {
		if c.Empty() {
			return 0
		}
		if hint == 0 || c.LastTimestamp < hint {
			hint = c.LastTimestamp
		}
	}
	return hint
}

// Streams returns the number of streams observed so far.
func (s *GroupState) Streams() int {
	return len(s.cursors)
}
