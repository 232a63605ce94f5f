package events

import "time"

const WorkerCheckTopic = "swasthi.attendance.alerts.v1"

// WorkerCheckRequestedEvent is raised when an employee crosses the
// continuous-leave threshold and the company must check on the worker.
type WorkerCheckRequestedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	EmployeeID       string    `json:"employee_id"`
	CompanyID        string    `json:"company_id,omitempty"`
	ContinuousLeaves int       `json:"continuous_leaves"`
	OccurredAt       time.Time `json:"occurred_at"`
}
