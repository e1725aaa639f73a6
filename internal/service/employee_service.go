package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

// EmployeeService handles the manager/admin employee surface.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	bcryptCost int
	dispatcher events.Dispatcher
}

// EmployeeDependencies bundles repositories for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Dispatcher   events.Dispatcher
}

// NewEmployeeService creates the service.
func NewEmployeeService(bcryptCost int, deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		bcryptCost: bcryptCost,
		dispatcher: deps.Dispatcher,
	}
}

// CreateEmployeeInput carries fields for manager/admin employee creation.
type CreateEmployeeInput struct {
	Name          string
	Email         string
	Password      string
	Department    *string
	Skills        *string
	Experience    int
	BillableHours int
}

// CreateEmployee lets a manager or admin add an employee-role account.
// A manager's own department is stamped on the new record.
func (s *EmployeeService) CreateEmployee(ctx context.Context, actor *domain.Employee, input CreateEmployeeInput) (*domain.Employee, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.employees.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	dept := input.Department
	if actor.Role == domain.RoleManager {
		dept = actor.Department
	}

	emp := &domain.Employee{
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  hash,
		Role:          domain.RoleEmployee,
		Department:    dept,
		Skills:        input.Skills,
		Experience:    input.Experience,
		BillableHours: input.BillableHours,
		Active:        true,
		AddedBy:       &actor.ID,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

// ListEmployees returns employees visible to the actor. Managers see
// only their own department.
func (s *EmployeeService) ListEmployees(ctx context.Context, actor *domain.Employee, role *domain.Role) ([]domain.Employee, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	filter := repository.EmployeeFilter{Role: role}
	if actor.Role == domain.RoleManager {
		if actor.Department == nil {
			return nil, apperrors.NewForbidden("manager department not set")
		}
		filter.Department = actor.Department
	}

	list, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetEmployee fetches a single employee within the actor's scope.
func (s *EmployeeService) GetEmployee(ctx context.Context, actor *domain.Employee, id int64) (*domain.Employee, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.departmentScope(actor, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// UpdateEmployeeInput carries optional updates; nil fields are untouched.
type UpdateEmployeeInput struct {
	Name          *string
	Email         *string
	Department    *string
	Skills        *string
	Experience    *int
	BillableHours *int
}

// UpdateEmployee updates profile fields within the actor's scope.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, actor *domain.Employee, id int64, input UpdateEmployeeInput) (*domain.Employee, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.departmentScope(actor, emp); err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != emp.Email {
		existing, err := s.employees.GetByEmail(ctx, *input.Email)
		if err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": *input.Email})
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		emp.Email = *input.Email
	}
	if input.Name != nil {
		emp.Name = *input.Name
	}
	if input.Department != nil {
		emp.Department = input.Department
	}
	if input.Skills != nil {
		emp.Skills = input.Skills
	}
	if input.Experience != nil {
		emp.Experience = *input.Experience
	}
	if input.BillableHours != nil {
		emp.BillableHours = *input.BillableHours
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

// ToggleActive flips the active flag within the actor's scope.
func (s *EmployeeService) ToggleActive(ctx context.Context, actor *domain.Employee, id int64) (*domain.Employee, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.departmentScope(actor, emp); err != nil {
		return nil, err
	}

	emp.Active = !emp.Active
	if err := s.employees.SetActive(ctx, emp.ID, emp.Active); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishStatusChanged(ctx, actor, emp)
	return emp, nil
}

// SearchBySkills finds active employee-role accounts matching any of
// the comma-separated skills, optionally above a minimum experience.
func (s *EmployeeService) SearchBySkills(ctx context.Context, actor *domain.Employee, skills string, minExperience *int) ([]domain.Employee, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	wanted := splitSkills(skills)
	if len(wanted) == 0 {
		return nil, apperrors.NewValidationError("at least one skill required", map[string]any{"field": "skills"})
	}

	active := true
	employeeRole := domain.RoleEmployee
	filter := repository.EmployeeFilter{
		Role:          &employeeRole,
		Active:        &active,
		MinExperience: minExperience,
	}
	if actor.Role == domain.RoleManager {
		if actor.Department == nil {
			return nil, apperrors.NewForbidden("manager department not set")
		}
		filter.Department = actor.Department
	}

	candidates, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var matched []domain.Employee
	for _, emp := range candidates {
		if emp.Skills == nil {
			continue
		}
		if skillsMatch(splitSkills(*emp.Skills), wanted) {
			matched = append(matched, emp)
		}
	}
	return matched, nil
}

// departmentScope lets admins act anywhere; managers only on records in
// their own department.
func (s *EmployeeService) departmentScope(actor, target *domain.Employee) error {
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

func (s *EmployeeService) publishStatusChanged(ctx context.Context, actor, emp *domain.Employee) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventEmployeeStatusChanged,
		Actor:     events.Actor{EmployeeID: actor.ID, Role: actor.Role},
		Timestamp: time.Now().UTC(),
		Payload:   events.EmployeeStatusChangedPayload{EmployeeID: emp.ID, Active: emp.Active},
	})
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// skillsMatch reports whether any wanted skill matches a held skill,
// exact or substring, case-insensitive.
func skillsMatch(held, wanted []string) bool {
	for _, w := range wanted {
		for _, h := range held {
			if h == w || strings.Contains(h, w) {
				return true
			}
		}
	}
	return false
}
