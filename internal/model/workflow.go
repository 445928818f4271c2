package model

import (
	"time"
)

// ClockFormat is how log timestamps are shown on the dashboard.
const ClockFormat = "15:04:05"

// WorkflowLogEntry is one simulated orchestration step.
type WorkflowLogEntry struct {
	Sequence uint64    `json:"sequence"`
	Time     time.Time `json:"time"`
	Agent    string    `json:"agent"`
	Skill    string    `json:"skill"`
	Status   string    `json:"status"`
	RefID    string    `json:"ref_id,omitempty"`
	Details  string    `json:"details,omitempty"`
}

// Clock returns the entry time as HH:MM:SS.
func (e WorkflowLogEntry) Clock() string {
	return e.Time.Format(ClockFormat)
}

// RefOrDash returns the reference id, or "-" when there is none.
func (e WorkflowLogEntry) RefOrDash() string {
	if e.RefID == "" {
		return "-"
	}
	return e.RefID
}

// DetailsOrDash returns the details, or "-" when there are none.
func (e WorkflowLogEntry) DetailsOrDash() string {
	if e.Details == "" {
		return "-"
	}
	return e.Details
}

// ListLogsResponse is the response for listing workflow log entries.
type ListLogsResponse struct {
	Entries []WorkflowLogEntry `json:"entries"`
	Total   int                `json:"total"`
}
