package model

// RawEvent is one log event as returned by the source. Timestamps are
// millisecond epoch and are not guaranteed to increase within a page; IDs are
// unique within a stream but not across streams.
type RawEvent struct {
	Group     string `json:"group"`
	Stream    string `json:"stream"`
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// GroupDescriptor describes one log group available at the source.
type GroupDescriptor struct {
	Name         string `json:"name"`
	Arn          string `json:"arn,omitempty"`
	StoredBytes  int64  `json:"storedBytes"`
	CreationTime int64  `json:"creationTime"`
}

// LogGroupTarget identifies one watched log group. Immutable for the run.
type LogGroupTarget struct {
	Name         string
	StreamPrefix string
}
