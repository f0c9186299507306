package events

import "time"

const (
	PayrollGeneratedTopic     = "hr.payroll.generated.v1"
	PayrollGeneratedEventType = "payroll.generated"
)

// PayrollGeneratedEvent announces a committed generation run. Consumers
// reload the records for the period rather than trusting a payload copy.
type PayrollGeneratedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	OrganizationID string    `json:"organization_id"`
	AdminID        string    `json:"admin_id"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	EmployeeIDs    []string  `json:"employee_ids"`
	OccurredAt     time.Time `json:"occurred_at"`
}
