package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// AssignmentService handles project assignment operations.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	employees   repository.EmployeeRepository
	projects    repository.ProjectRepository
	dispatcher  events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	EmployeeRepo   repository.EmployeeRepository
	ProjectRepo    repository.ProjectRepository
	Dispatcher     events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		employees:   deps.EmployeeRepo,
		projects:    deps.ProjectRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateAssignment assigns an employee to a project. Managers and
// admins, and managers only within their own department. Duplicate
// (employee, project) pairs lose at the unique constraint so the check
// holds under concurrent creates.
func (s *AssignmentService) CreateAssignment(ctx context.Context, actor *domain.Employee, employeeID, projectID int64, allottedHours int) (*domain.Assignment, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if allottedHours <= 0 {
		return nil, apperrors.NewValidationError("allotted hours must be positive", map[string]any{"field": "allotted_hours"})
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.departmentScope(actor, emp); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, apperrors.MapError(err)
	}

	assignment := &domain.Assignment{
		EmployeeID:    employeeID,
		ProjectID:     projectID,
		AllottedHours: allottedHours,
		EmployeeName:  emp.Name,
		ProjectName:   project.Name,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("assignment already exists", map[string]any{
				"employee_id": employeeID,
				"project_id":  projectID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventAssignmentCreated, events.AssignmentCreatedPayload{
		AssignmentID:  assignment.ID,
		EmployeeID:    employeeID,
		ProjectID:     projectID,
		AllottedHours: allottedHours,
	})
	return assignment, nil
}

// ListAssignments lists assignments, optionally filtered. Managers and admins.
func (s *AssignmentService) ListAssignments(ctx context.Context, actor *domain.Employee, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	list, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// UpdateAllottedHours adjusts the hour budget of an assignment.
func (s *AssignmentService) UpdateAllottedHours(ctx context.Context, actor *domain.Employee, id int64, allottedHours int) (*domain.Assignment, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if allottedHours <= 0 {
		return nil, apperrors.NewValidationError("allotted hours must be positive", map[string]any{"field": "allotted_hours"})
	}

	assignment, err := s.scopedAssignment(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	assignment.AllottedHours = allottedHours
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignment, nil
}

// DeleteAssignment removes an assignment.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, actor *domain.Employee, id int64) error {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.scopedAssignment(ctx, actor, id); err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// MyAssignments returns the actor's own assignments. Any role.
func (s *AssignmentService) MyAssignments(ctx context.Context, actor *domain.Employee) ([]domain.Assignment, error) {
	list, err := s.assignments.List(ctx, repository.AssignmentFilter{EmployeeID: &actor.ID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// MyAssignment returns one of the actor's assignments. Assignments
// belonging to someone else read as not found.
func (s *AssignmentService) MyAssignment(ctx context.Context, actor *domain.Employee, id int64) (*domain.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if assignment.EmployeeID != actor.ID {
		return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": id})
	}
	return assignment, nil
}

// CompleteAssignment marks the actor's own assignment done, once.
func (s *AssignmentService) CompleteAssignment(ctx context.Context, actor *domain.Employee, id int64, hoursWorked int, notes *string) (*domain.Assignment, error) {
	if hoursWorked < 0 {
		return nil, apperrors.NewValidationError("hours worked cannot be negative", map[string]any{"field": "hours_worked"})
	}

	assignment, err := s.MyAssignment(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if assignment.Completed {
		return nil, apperrors.NewConflict("assignment already completed", map[string]any{"assignment_id": id})
	}

	now := time.Now().UTC()
	assignment.Completed = true
	assignment.CompletedAt = &now
	assignment.HoursWorked = hoursWorked
	assignment.CompletionNotes = notes

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.EventAssignmentCompleted, events.AssignmentCompletedPayload{
		AssignmentID: assignment.ID,
		EmployeeID:   assignment.EmployeeID,
		ProjectID:    assignment.ProjectID,
		HoursWorked:  hoursWorked,
	})
	return assignment, nil
}

// scopedAssignment fetches an assignment and applies department
// narrowing for manager actors against the assigned employee.
func (s *AssignmentService) scopedAssignment(ctx context.Context, actor *domain.Employee, id int64) (*domain.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if actor.Role == domain.RoleManager {
		emp, err := s.employees.GetByID(ctx, assignment.EmployeeID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := s.departmentScope(actor, emp); err != nil {
			return nil, err
		}
	}
	return assignment, nil
}

func (s *AssignmentService) departmentScope(actor, target *domain.Employee) error {
	if actor.Role != domain.RoleManager {
		return nil
	}
	if actor.Department == nil {
		return apperrors.NewForbidden("manager department not set")
	}
	if target.Department == nil || *target.Department != *actor.Department {
		return apperrors.NewForbidden("employee outside your department")
	}
	return nil
}

func (s *AssignmentService) publish(ctx context.Context, actor *domain.Employee, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{EmployeeID: actor.ID, Role: actor.Role},
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
