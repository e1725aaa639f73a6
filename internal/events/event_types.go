package events

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeSignedUp      EventType = "employee_signed_up"
	EventEmployeeStatusChanged EventType = "employee_status_changed"
	EventAssignmentCreated     EventType = "assignment_created"
	EventAssignmentCompleted   EventType = "assignment_completed"
	EventPasswordReset         EventType = "password_reset"
)

// Actor encapsulates who triggered an event. EmployeeID is zero for
// unauthenticated flows such as signup and password reset.
type Actor struct {
	EmployeeID int64       `json:"employee_id,omitempty"`
	Role       domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EmployeeSignedUpPayload payload.
type EmployeeSignedUpPayload struct {
	EmployeeID int64       `json:"employee_id"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
}

// EmployeeStatusChangedPayload payload.
type EmployeeStatusChangedPayload struct {
	EmployeeID int64 `json:"employee_id"`
	Active     bool  `json:"active"`
}

// AssignmentCreatedPayload payload.
type AssignmentCreatedPayload struct {
	AssignmentID  int64 `json:"assignment_id"`
	EmployeeID    int64 `json:"employee_id"`
	ProjectID     int64 `json:"project_id"`
	AllottedHours int   `json:"allotted_hours"`
}

// AssignmentCompletedPayload payload.
type AssignmentCompletedPayload struct {
	AssignmentID int64 `json:"assignment_id"`
	EmployeeID   int64 `json:"employee_id"`
	ProjectID    int64 `json:"project_id"`
	HoursWorked  int   `json:"hours_worked"`
}

// PasswordResetPayload payload.
type PasswordResetPayload struct {
	EmployeeID int64 `json:"employee_id"`
}
