package domain

import "time"

// Assignment links an employee to a project. The (employee, project)
// pair is unique for the lifetime of the assignment.
type Assignment struct {
	ID              int64
	EmployeeID      int64
	ProjectID       int64
	AssignedAt      time.Time
	AllottedHours   int
	Completed       bool
	CompletedAt     *time.Time
	HoursWorked     int
	CompletionNotes *string

	// Denormalized for responses; populated by joins.
	EmployeeName string
	ProjectName  string
}
