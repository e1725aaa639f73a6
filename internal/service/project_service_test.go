package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/workforce-service/internal/domain"
)

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProjectRepo()
	svc := NewProjectService(repo, nil)

	admin := &domain.Employee{ID: 1, Role: domain.RoleAdmin}
	manager := &domain.Employee{ID: 2, Role: domain.RoleManager}
	worker := &domain.Employee{ID: 3, Role: domain.RoleEmployee}

	t.Run("admin creates a project", func(t *testing.T) {
		project, err := svc.CreateProject(ctx, admin, ProjectInput{
			Name:          "Atlas",
			Client:        "Acme",
			ExpectedHours: 400,
			Active:        true,
		})
		require.NoError(t, err)
		require.NotZero(t, project.ID)
		require.False(t, project.StartDate.IsZero())
	})

	t.Run("non-admins cannot create", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, manager, ProjectInput{Name: "Nope", Client: "Acme"})
		requireErrorCode(t, err, "FORBIDDEN")
		_, err = svc.CreateProject(ctx, worker, ProjectInput{Name: "Nope", Client: "Acme"})
		requireErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("managers can list but employees cannot", func(t *testing.T) {
		list, err := svc.ListProjects(ctx, manager, 0, 0)
		require.NoError(t, err)
		require.NotEmpty(t, list)

		_, err = svc.ListProjects(ctx, worker, 0, 0)
		requireErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("update applies only provided fields", func(t *testing.T) {
		project, err := svc.CreateProject(ctx, admin, ProjectInput{
			Name:          "Borealis",
			Client:        "Acme",
			ExpectedHours: 200,
			Active:        true,
		})
		require.NoError(t, err)

		end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		active := false
		updated, err := svc.UpdateProject(ctx, admin, project.ID, ProjectUpdateInput{
			Active:  &active,
			EndDate: &end,
		})
		require.NoError(t, err)
		require.False(t, updated.Active)
		require.Equal(t, end, *updated.EndDate)
		require.Equal(t, "Borealis", updated.Name)
		require.Equal(t, 200, updated.ExpectedHours)
	})

	t.Run("missing project is not found", func(t *testing.T) {
		_, err := svc.GetProject(ctx, admin, 9999)
		requireErrorCode(t, err, "NOT_FOUND")
		_, err = svc.UpdateProject(ctx, admin, 9999, ProjectUpdateInput{})
		requireErrorCode(t, err, "NOT_FOUND")
	})
}

func TestProjectStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProjectRepo()
	svc := NewProjectService(repo, nil)

	admin := &domain.Employee{ID: 1, Role: domain.RoleAdmin}
	manager := &domain.Employee{ID: 2, Role: domain.RoleManager}

	_, err := svc.CreateProject(ctx, admin, ProjectInput{Name: "Atlas", Client: "Acme", ExpectedHours: 400, Active: true})
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, admin, ProjectInput{Name: "Borealis", Client: "Acme", ExpectedHours: 150, Active: true})
	require.NoError(t, err)
	project, err := svc.CreateProject(ctx, admin, ProjectInput{Name: "Cygnus", Client: "Globex", ExpectedHours: 50, Active: true})
	require.NoError(t, err)

	done := false
	_, err = svc.UpdateProject(ctx, admin, project.ID, ProjectUpdateInput{Active: &done})
	require.NoError(t, err)

	t.Run("counters reflect the portfolio", func(t *testing.T) {
		stats, err := svc.Stats(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, int64(3), stats.TotalProjects)
		require.Equal(t, int64(2), stats.ActiveProjects)
		require.Equal(t, int64(1), stats.CompletedProjects)
		require.Equal(t, int64(600), stats.TotalExpectedHours)
	})

	t.Run("stats are admin only", func(t *testing.T) {
		_, err := svc.Stats(ctx, manager)
		requireErrorCode(t, err, "FORBIDDEN")
	})
}
