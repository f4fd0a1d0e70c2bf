package domain

type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
)

// IsTerminal reports whether polling can stop. requires_action is terminal here
// because no function tools are registered, so nothing can ever submit outputs.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired, RunStatusRequiresAction:
		return true
	default:
		return false
	}
}

// Run is an asynchronous job executed by an assistant on a thread.
type Run struct {
	ID          string
	ThreadID    string
	AssistantID string
	Status      RunStatus
	LastError   string
}

type RunEventType string

const (
	RunEventSubmitted RunEventType = "submitted"
	RunEventPending   RunEventType = "pending"
	RunEventStatus    RunEventType = "status"
	RunEventCompleted RunEventType = "completed"
	RunEventFailed    RunEventType = "failed"
)

type RunEvent struct {
	Type   RunEventType `json:"type"`
	RunID  string       `json:"run_id,omitempty"`
	Status RunStatus    `json:"status,omitempty"`
	Error  string       `json:"error,omitempty"`
}
