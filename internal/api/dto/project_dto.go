package dto

import (
	"time"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// ProjectCreateRequest payload for project creation.
type ProjectCreateRequest struct {
	Name          string     `json:"name"`
	Client        string     `json:"client"`
	ExpectedHours int        `json:"expected_hours"`
	Active        *bool      `json:"status,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// ProjectUpdateRequest payload; nil fields are left unchanged.
type ProjectUpdateRequest struct {
	Name          *string    `json:"name,omitempty"`
	Client        *string    `json:"client,omitempty"`
	ExpectedHours *int       `json:"expected_hours,omitempty"`
	Active        *bool      `json:"status,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// ProjectResponse is the project shape returned by the API.
type ProjectResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Client        string     `json:"client"`
	ExpectedHours int        `json:"expected_hours"`
	Active        bool       `json:"status"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// NewProjectResponse maps the domain model.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Client:        p.Client,
		ExpectedHours: p.ExpectedHours,
		Active:        p.Active,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
	}
}

// NewProjectResponses maps a slice.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}
