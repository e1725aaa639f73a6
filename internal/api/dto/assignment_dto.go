package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// AssignmentCreateRequest payload for assigning an employee to a project.
type AssignmentCreateRequest struct {
	EmployeeID    int64 `json:"employee_id"`
	ProjectID     int64 `json:"project_id"`
	AllottedHours int   `json:"allotted_hours"`
}

// AssignmentUpdateRequest payload for adjusting the hour budget.
type AssignmentUpdateRequest struct {
	AllottedHours int `json:"allotted_hours"`
}

// AssignmentCompleteRequest payload for marking own work done.
type AssignmentCompleteRequest struct {
	HoursWorked     int     `json:"hours_worked"`
	CompletionNotes *string `json:"completion_notes,omitempty"`
}

// AssignmentResponse is the assignment shape returned by the API.
type AssignmentResponse struct {
	ID              int64      `json:"id"`
	EmployeeID      int64      `json:"employee_id"`
	ProjectID       int64      `json:"project_id"`
	EmployeeName    string     `json:"employee_name"`
	ProjectName     string     `json:"project_name"`
	AssignedAt      time.Time  `json:"assigned_at"`
	AllottedHours   int        `json:"allotted_hours"`
	Completed       bool       `json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	HoursWorked     int        `json:"hours_worked"`
	CompletionNotes *string    `json:"completion_notes,omitempty"`
}

// NewAssignmentResponse maps the domain model.
func NewAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		ProjectID:       a.ProjectID,
		EmployeeName:    a.EmployeeName,
		ProjectName:     a.ProjectName,
		AssignedAt:      a.AssignedAt,
		AllottedHours:   a.AllottedHours,
		Completed:       a.Completed,
		CompletedAt:     a.CompletedAt,
		HoursWorked:     a.HoursWorked,
		CompletionNotes: a.CompletionNotes,
	}
}

// NewAssignmentResponses maps a slice.
func NewAssignmentResponses(assignments []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, NewAssignmentResponse(&assignments[i]))
	}
	return out
}
