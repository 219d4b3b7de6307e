package types

import "time"

// StageState is the terminal state of a single stage within a run.
type StageState string

const (
	StageCompleted StageState = "completed"
	StageFailed    StageState = "failed"
	StageNotRun    StageState = "not-run"
	StageCancelled StageState = "cancelled"
)

// StageStatus records the outcome of one stage, in declared order.
type StageStatus struct {
	Name   string     `json:"stage_name"`
	Status StageState `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Confirmation is the delivery record produced by a notification backend.
type Confirmation struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient,omitempty"`
	Count     int       `json:"count"`
	SentAt    time.Time `json:"sent_at"`
}

// RunResult is the caller-facing outcome of one pipeline run. A failed
// run reports which stage failed and why; it never carries a partially
// processed listing set as if it were complete.
type RunResult struct {
	SessionID        string        `json:"session_id"`
	Success          bool          `json:"success"`
	Cancelled        bool          `json:"cancelled,omitempty"`
	StageStatuses    []StageStatus `json:"stage_statuses"`
	TopListings      []Listing     `json:"top_listings"`
	NotificationSent bool          `json:"notification_sent"`
	Error            string        `json:"error,omitempty"`
	FailedStage      string        `json:"failed_stage,omitempty"`
	Timestamp        time.Time     `json:"timestamp"`
}
