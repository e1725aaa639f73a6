package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// ProjectRepository handles persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, limit, offset int) ([]domain.Project, error)
	Stats(ctx context.Context) (*domain.ProjectStats, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates the repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, client, expected_hours, active_flag, start_date, end_date)
        VALUES ($1,$2,$3,$4,COALESCE($5, NOW()),$6)
        RETURNING id, start_date, created_at, updated_at`

	var startDate any
	if !project.StartDate.IsZero() {
		startDate = project.StartDate
	}

	return r.pool.QueryRow(ctx, query,
		project.Name,
		project.Client,
		project.ExpectedHours,
		project.Active,
		startDate,
		project.EndDate,
	).Scan(&project.ID, &project.StartDate, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects
        SET name=$1, client=$2, expected_hours=$3, active_flag=$4, end_date=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		project.Name,
		project.Client,
		project.ExpectedHours,
		project.Active,
		project.EndDate,
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const query = `
        SELECT id, name, client, expected_hours, active_flag, start_date, end_date, created_at, updated_at
        FROM projects WHERE id=$1`

	var project domain.Project
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Client,
		&project.ExpectedHours,
		&project.Active,
		&project.StartDate,
		&project.EndDate,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, limit, offset int) ([]domain.Project, error) {
	query := `
        SELECT id, name, client, expected_hours, active_flag, start_date, end_date, created_at, updated_at
        FROM projects ORDER BY created_at DESC`

	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Client,
			&project.ExpectedHours,
			&project.Active,
			&project.StartDate,
			&project.EndDate,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}

func (r *projectRepository) Stats(ctx context.Context) (*domain.ProjectStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE active_flag),
               COUNT(*) FILTER (WHERE NOT active_flag),
               COALESCE(SUM(expected_hours), 0)
        FROM projects`

	var stats domain.ProjectStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalProjects,
		&stats.ActiveProjects,
		&stats.CompletedProjects,
		&stats.TotalExpectedHours,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}
