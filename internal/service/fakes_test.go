package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	require.Equal(t, code, domainErr.Code)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func assignmentsFor(employeeID int64) repository.AssignmentFilter {
	return repository.AssignmentFilter{EmployeeID: &employeeID}
}

type fakeEmployeeRepo struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: make(map[int64]domain.Employee)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == emp.Email {
			return uniqueViolation("employees_email_key")
		}
	}
	r.seq++
	emp.ID = r.seq
	emp.CreatedAt = time.Now().UTC()
	emp.UpdatedAt = emp.CreatedAt
	r.byID[emp.ID] = *emp
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.byID {
		if id != emp.ID && existing.Email == emp.Email {
			return uniqueViolation("employees_email_key")
		}
	}
	emp.UpdatedAt = time.Now().UTC()
	r.byID[emp.ID] = *emp
	return nil
}

func (r *fakeEmployeeRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.PasswordHash = hash
	r.byID[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.Active = active
	r.byID[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := emp
	return &out, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, emp := range r.byID {
		if emp.Email == email {
			out := emp
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Employee
	for _, emp := range r.byID {
		if filter.Department != nil && (emp.Department == nil || *emp.Department != *filter.Department) {
			continue
		}
		if filter.Role != nil && emp.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && emp.Active != *filter.Active {
			continue
		}
		if filter.MinExperience != nil && emp.Experience < *filter.MinExperience {
			continue
		}
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeProjectRepo struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: make(map[int64]domain.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	project.ID = r.seq
	if project.StartDate.IsZero() {
		project.StartDate = time.Now().UTC()
	}
	project.CreatedAt = time.Now().UTC()
	project.UpdatedAt = project.CreatedAt
	r.byID[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	project.UpdatedAt = time.Now().UTC()
	r.byID[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := project
	return &out, nil
}

func (r *fakeProjectRepo) List(_ context.Context, limit, offset int) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Project
	for _, project := range r.byID {
		out = append(out, project)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProjectRepo) Stats(_ context.Context) (*domain.ProjectStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats domain.ProjectStats
	for _, project := range r.byID {
		stats.TotalProjects++
		if project.Active {
			stats.ActiveProjects++
		} else {
			stats.CompletedProjects++
		}
		stats.TotalExpectedHours += int64(project.ExpectedHours)
	}
	return &stats, nil
}

type fakeAssignmentRepo struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{byID: make(map[int64]domain.Assignment)}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.EmployeeID == assignment.EmployeeID && existing.ProjectID == assignment.ProjectID {
			return uniqueViolation("unique_employee_project")
		}
	}
	r.seq++
	assignment.ID = r.seq
	assignment.AssignedAt = time.Now().UTC()
	r.byID[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, assignment *domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[assignment.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id int64) (*domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := assignment
	return &out, nil
}

func (r *fakeAssignmentRepo) List(_ context.Context, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Assignment
	for _, assignment := range r.byID {
		if filter.EmployeeID != nil && assignment.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.ProjectID != nil && assignment.ProjectID != *filter.ProjectID {
			continue
		}
		out = append(out, assignment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
