package domain

import "time"

// Project models a client engagement employees are assigned to.
type Project struct {
	ID            int64
	Name          string
	Client        string
	ExpectedHours int
	Active        bool
	StartDate     time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProjectStats aggregates portfolio-level counters.
type ProjectStats struct {
	TotalProjects      int64 `json:"total_projects"`
	ActiveProjects     int64 `json:"active_projects"`
	CompletedProjects  int64 `json:"completed_projects"`
	TotalExpectedHours int64 `json:"total_expected_hours"`
}
