package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// UserDataRepo stores the single signed-in user record as an opaque
// JSON document. Decoding is the caller's concern.
type UserDataRepo interface {
	// Load returns the stored payload or ErrNotFound.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored payload.
	Save(ctx context.Context, payload []byte) error

	// Delete removes the stored payload. Deleting nothing is not an error.
	Delete(ctx context.Context) error
}

// APIRequestEventData captures a single backend call.
type APIRequestEventData struct {
	Endpoint      string
	PageType      string
	ParticipantID string
	LatencyMs     int64
	Success       bool
	ErrorMessage  string
}

// APIRequestEventRecord is a stored APIRequestEventData.
type APIRequestEventRecord struct {
	Sequence  int64
	EventID   string
	Timestamp time.Time
	APIRequestEventData
}

// QuestEventData records one change of a quest's completion state.
type QuestEventData struct {
	ParticipantID string
	VisitID       string
	QuestID       string
	Source        string // "ai", "keyword" or "manual"
	Completed     bool
}

// QuestEventRecord is a stored QuestEventData.
type QuestEventRecord struct {
	Sequence  int64
	EventID   string
	Timestamp time.Time
	QuestEventData
}

// EventRepo provides append and query access to local events.
type EventRepo interface {
	// AppendAPIRequest records a backend call.
	AppendAPIRequest(ctx context.Context, data APIRequestEventData) error

	// QueryAPIRequests returns backend calls, newest first.
	QueryAPIRequests(ctx context.Context, opts QueryOpts) ([]APIRequestEventRecord, error)

	// AppendQuestEvent records a quest completion toggle.
	AppendQuestEvent(ctx context.Context, data QuestEventData) error

	// QueryQuestEvents returns quest events for a participant, newest first.
	QueryQuestEvents(ctx context.Context, participantID string, opts QueryOpts) ([]QuestEventRecord, error)
}
