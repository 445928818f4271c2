package model

import (
	"time"
)

// ReplayCompleteEvent marks the end of a workflow log replay on a stream.
type ReplayCompleteEvent struct {
	LastSequence uint64 `json:"last_sequence"`
	EntryCount   int    `json:"entry_count"`
}

// HeartbeatEvent represents a heartbeat event.
type HeartbeatEvent struct {
	Timestamp time.Time `json:"timestamp"`
}
