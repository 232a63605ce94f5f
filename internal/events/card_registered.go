package events

import "time"

const CardRegisteredTopic = "swasthi.card.lifecycle.v1"

type CardRegisteredEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	HealthCardID string    `json:"health_card_id"`
	CompanyID    string    `json:"company_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
