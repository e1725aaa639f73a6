package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workforce-service/internal/auth"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/persistence"
	"github.com/spec-kit/workforce-service/internal/repository"
	apperrors "github.com/spec-kit/workforce-service/pkg/util"
)

const (
	projectStatsCacheKey = "workforce:project_stats"
	projectStatsCacheTTL = time.Minute
)

// ProjectService handles the admin project surface.
type ProjectService struct {
	projects repository.ProjectRepository
	cache    *persistence.Cache
}

// NewProjectService creates the service. The cache may be nil.
func NewProjectService(projects repository.ProjectRepository, cache *persistence.Cache) *ProjectService {
	return &ProjectService{projects: projects, cache: cache}
}

// ProjectInput carries fields for project creation.
type ProjectInput struct {
	Name          string
	Client        string
	ExpectedHours int
	Active        bool
	EndDate       *time.Time
}

// CreateProject creates a project. Admin only.
func (s *ProjectService) CreateProject(ctx context.Context, actor *domain.Employee, input ProjectInput) (*domain.Project, error) {
	if err := auth.Authorize(actor.Role, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Client == "" {
		return nil, apperrors.NewValidationError("name and client required", nil)
	}

	project := &domain.Project{
		Name:          input.Name,
		Client:        input.Client,
		ExpectedHours: input.ExpectedHours,
		Active:        input.Active,
		EndDate:       input.EndDate,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx, projectStatsCacheKey)
	return project, nil
}

// GetProject fetches a project. Admin only.
func (s *ProjectService) GetProject(ctx context.Context, actor *domain.Employee, id int64) (*domain.Project, error) {
	if err := auth.Authorize(actor.Role, domain.RoleAdmin); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// ListProjects lists projects. Managers and admins.
func (s *ProjectService) ListProjects(ctx context.Context, actor *domain.Employee, limit, offset int) ([]domain.Project, error) {
	if err := auth.Authorize(actor.Role, domain.RoleManager, domain.RoleAdmin); err != nil {
		return nil, err
	}

	list, err := s.projects.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ProjectUpdateInput carries optional updates; nil fields are untouched.
type ProjectUpdateInput struct {
	Name          *string
	Client        *string
	ExpectedHours *int
	Active        *bool
	EndDate       *time.Time
}

// UpdateProject updates a project. Admin only.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *domain.Employee, id int64, input ProjectUpdateInput) (*domain.Project, error) {
	if err := auth.Authorize(actor.Role, domain.RoleAdmin); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Client != nil {
		project.Client = *input.Client
	}
	if input.ExpectedHours != nil {
		project.ExpectedHours = *input.ExpectedHours
	}
	if input.Active != nil {
		project.Active = *input.Active
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx, projectStatsCacheKey)
	return project, nil
}

// Stats returns portfolio counters, cached briefly in Redis. Admin only.
func (s *ProjectService) Stats(ctx context.Context, actor *domain.Employee) (*domain.ProjectStats, error) {
	if err := auth.Authorize(actor.Role, domain.RoleAdmin); err != nil {
		return nil, err
	}

	var cached domain.ProjectStats
	if err := s.cache.GetJSON(ctx, projectStatsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats, err := s.projects.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.SetJSON(ctx, projectStatsCacheKey, stats, projectStatsCacheTTL)
	return stats, nil
}
