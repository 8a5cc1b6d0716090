// Package cursor tracks how far a log stream has already been read, so that
// repeated fetches over an overlapping time window emit each event exactly once.
package cursor

import (
	"sort"

	"github.com/penwyp/cloudwatcher/internal/core/model"
)

// Cursor is the high-water mark for one stream. LastTimestamp is the maximum
// timestamp of any event already emitted; SeenIDs holds the identifiers of
// emitted events that share LastTimestamp, to disambiguate ties. A zero Cursor
// means nothing has been emitted yet.
type Cursor struct {
	LastTimestamp int64
	SeenIDs       map[string]struct{}
}

// Empty reports whether the cursor has never observed an event.
func (c Cursor) Empty() bool {
	return c.LastTimestamp == 0 && len(c.SeenIDs) == 0
}

// Seen reports whether the cursor dominates the event: anything strictly
// older than the high-water mark is seen, and at the mark itself the
// identifier decides. Identifier match wins even if the payload changed.
func (c Cursor) Seen(e model.RawEvent) bool {
	if e.Timestamp < c.LastTimestamp {
		return true
	}
	if e.Timestamp > c.LastTimestamp {
		return false
	}
	_, ok := c.SeenIDs[e.ID]
	return ok
}

// Advance partitions events against the cursor and returns the events not yet
// emitted, sorted ascending by (timestamp, id), together with the advanced
// cursor. The input may arrive in any order and may contain duplicate
// identifiers from overlapping pages; duplicates collapse to one emission.
// The returned cursor's LastTimestamp never regresses, even when the batch
// contains no new events.
func Advance(c Cursor, events []model.RawEvent) (Cursor, []model.RawEvent) {
	var fresh []model.RawEvent
	inBatch := make(map[string]struct{}, len(events))

	maxTS := c.LastTimestamp
	for _, e := range events {
		if e.Timestamp > maxTS {
			maxTS = e.Timestamp
		}
		if c.Seen(e) {
			continue
		}
		if _, dup := inBatch[e.ID]; dup {
			continue
		}
		inBatch[e.ID] = struct{}{}
		fresh = append(fresh, e)
	}

	sort.Slice(fresh, func(i, j int) bool {
		if fresh[i].Timestamp != fresh[j].Timestamp {
			return fresh[i].Timestamp < fresh[j].Timestamp
		}
		return fresh[i].ID < fresh[j].ID
	})

	next := Cursor{LastTimestamp: maxTS, SeenIDs: make(map[string]struct{})}
	if maxTS == c.LastTimestamp {
		// No advance: carry the existing tie-breaker set forward.
		for id := range c.SeenIDs {
			next.SeenIDs[id] = struct{}{}
		}
	}
	for _, e := range events {
		if e.Timestamp == maxTS {
			next.SeenIDs[e.ID] = struct{}{}
		}
	}
	return next, fresh
}
