package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// EmployeeCreateRequest payload for manager/admin employee creation.
type EmployeeCreateRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Department    *string `json:"dept,omitempty"`
	Skills        *string `json:"skills,omitempty"`
	Experience    int     `json:"experience"`
	BillableHours int     `json:"billable_hours"`
}

// EmployeeUpdateRequest payload; nil fields are left unchanged.
type EmployeeUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Department    *string `json:"dept,omitempty"`
	Skills        *string `json:"skills,omitempty"`
	Experience    *int    `json:"experience,omitempty"`
	BillableHours *int    `json:"billable_hours,omitempty"`
}

// EmployeeResponse is the employee shape returned by the API. The
// password hash never leaves the service.
type EmployeeResponse struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Role          domain.Role `json:"role"`
	Department    *string     `json:"dept,omitempty"`
	Skills        *string     `json:"skills,omitempty"`
	Experience    int         `json:"experience"`
	BillableHours int         `json:"billable_hours"`
	Active        bool        `json:"is_active"`
	AddedBy       *int64      `json:"added_by,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// NewEmployeeResponse maps the domain model.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            emp.ID,
		Name:          emp.Name,
		Email:         emp.Email,
		Role:          emp.Role,
		Department:    emp.Department,
		Skills:        emp.Skills,
		Experience:    emp.Experience,
		BillableHours: emp.BillableHours,
		Active:        emp.Active,
		AddedBy:       emp.AddedBy,
		CreatedAt:     emp.CreatedAt,
	}
}

// NewEmployeeResponses maps a slice.
func NewEmployeeResponses(emps []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(emps))
	for i := range emps {
		out = append(out, NewEmployeeResponse(&emps[i]))
	}
	return out
}
