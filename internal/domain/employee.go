package domain

import "time"

// Role enumerates access levels for employees.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Employee is the domain model for everyone registered in the system,
// including managers and admins.
type Employee struct {
	ID            int64
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	Department    *string
	Skills        *string
	Experience    int
	BillableHours int
	Active        bool
	AddedBy       *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
