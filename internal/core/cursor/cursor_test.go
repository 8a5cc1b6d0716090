package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/cloudwatcher/internal/core/model"
)

func ev(id string, ts int64) model.RawEvent {
	return model.RawEvent{Group: "g", Stream: "s", ID: id, Timestamp: ts, Message: "msg-" + id}
}

func ids(events []model.RawEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestAdvanceFromEmptyCursor(t *testing.T) {
	next, fresh := Advance(Cursor{}, []model.RawEvent{
		ev("a", 100), ev("b", 100), ev("c", 200),
	})

	assert.Equal(t, []string{"a", "b", "c"}, ids(fresh))
	assert.Equal(t, int64(200), next.LastTimestamp)
	assert.Equal(t, map[string]struct{}{"c": {}}, next.SeenIDs)
}

func TestAdvanceDropsDominatedEvents(t *testing.T) {
	cur := Cursor{LastTimestamp: 200, SeenIDs: map[string]struct{}{"c": {}}}

	next, fresh := Advance(cur, []model.RawEvent{
		ev("c", 200), // same id at the mark: already seen
		ev("d", 200), // new id at the mark
		ev("e", 150), // older than the mark
	})

	assert.Equal(t, []string{"d"}, ids(fresh))
	assert.Equal(t, int64(200), next.LastTimestamp)
	assert.Equal(t, map[string]struct{}{"c": {}, "d": {}}, next.SeenIDs)
}

func TestAdvanceCollapsesOverlappingPages(t *testing.T) {
	// The same event twice in one batch, as overlapping pages produce.
	_, fresh := Advance(Cursor{}, []model.RawEvent{ev("x", 50), ev("x", 50)})

	assert.Equal(t, []string{"x"}, ids(fresh))
}

func TestAdvanceSortsByTimestampThenID(t *testing.T) {
	_, fresh := Advance(Cursor{}, []model.RawEvent{
		ev("z", 300), ev("b", 100), ev("a", 300), ev("m", 200),
	})

	assert.Equal(t, []string{"b", "m", "a", "z"}, ids(fresh))
}

func TestAdvanceIsIdempotentAcrossRounds(t *testing.T) {
	batch := []model.RawEvent{ev("a", 100), ev("b", 150), ev("c", 150)}

	first, fresh := Advance(Cursor{}, batch)
	require.Len(t, fresh, 3)

	// Same batch again, from the advanced cursor: nothing new.
	second, fresh := Advance(first, batch)
	assert.Empty(t, fresh)
	assert.Equal(t, first.LastTimestamp, second.LastTimestamp)
	assert.Equal(t, first.SeenIDs, second.SeenIDs)
}

func TestAdvanceNeverRegresses(t *testing.T) {
	tests := []struct {
		name   string
		cursor Cursor
		events []model.RawEvent
		wantTS int64
	}{
		{
			name:   "only stale events",
			cursor: Cursor{LastTimestamp: 500, SeenIDs: map[string]struct{}{"q": {}}},
			events: []model.RawEvent{ev("a", 100), ev("b", 200)},
			wantTS: 500,
		},
		{
			name:   "empty batch",
			cursor: Cursor{LastTimestamp: 500, SeenIDs: map[string]struct{}{"q": {}}},
			events: nil,
			wantTS: 500,
		},
		{
			name:   "newer events advance",
			cursor: Cursor{LastTimestamp: 500, SeenIDs: map[string]struct{}{"q": {}}},
			events: []model.RawEvent{ev("a", 700)},
			wantTS: 700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := Advance(tt.cursor, tt.events)
			assert.Equal(t, tt.wantTS, next.LastTimestamp)
			assert.GreaterOrEqual(t, next.LastTimestamp, tt.cursor.LastTimestamp)
		})
	}
}

func TestAdvanceResetsSeenSetOnAdvance(t *testing.T) {
	cur := Cursor{LastTimestamp: 100, SeenIDs: map[string]struct{}{"old": {}}}

	next, fresh := Advance(cur, []model.RawEvent{ev("n1", 200), ev("n2", 200), ev("n3", 150)})

	assert.Equal(t, []string{"n3", "n1", "n2"}, ids(fresh))
	assert.Equal(t, int64(200), next.LastTimestamp)
	// Only ids at the new mark remain; "old" and "n3" are below it.
	assert.Equal(t, map[string]struct{}{"n1": {}, "n2": {}}, next.SeenIDs)
}

func TestAdvancePayloadChangeNotReEmitted(t *testing.T) {
	cur := Cursor{LastTimestamp: 100, SeenIDs: map[string]struct{}{"a": {}}}

	corrected := ev("a", 100)
	corrected.Message = "corrected payload"
	_, fresh := Advance(cur, []model.RawEvent{corrected})

	assert.Empty(t, fresh, "identifier match wins over payload differences")
}

func TestCursorEmpty(t *testing.T) {
	assert.True(t, Cursor{}.Empty())

	next, _ := Advance(Cursor{}, []model.RawEvent{ev("a", 1)})
	assert.False(t, next.Empty())
}
