package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/workforce-service/internal/domain"
)

// AssignmentRepository handles persistence for project assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	Update(ctx context.Context, assignment *domain.Assignment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error)
}

// AssignmentFilter defines query params for assignment listing.
type AssignmentFilter struct {
	EmployeeID *int64
	ProjectID  *int64
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

// Create relies on the unique (employee_id, project_id) constraint to
// reject duplicates under concurrent inserts; callers translate the
// unique violation into a conflict error.
func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO assignments (employee_id, project_id, allotted_hours)
        VALUES ($1,$2,$3)
        RETURNING id, assigned_at`

	return r.pool.QueryRow(ctx, query,
		assignment.EmployeeID,
		assignment.ProjectID,
		assignment.AllottedHours,
	).Scan(&assignment.ID, &assignment.AssignedAt)
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        UPDATE assignments
        SET allotted_hours=$1, completed_flag=$2, completed_at=$3, hours_worked=$4, completion_notes=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		assignment.AllottedHours,
		assignment.Completed,
		assignment.CompletedAt,
		assignment.HoursWorked,
		assignment.CompletionNotes,
		assignment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const assignmentSelect = `
        SELECT a.id, a.employee_id, a.project_id, a.assigned_at, a.allotted_hours,
               a.completed_flag, a.completed_at, a.hours_worked, a.completion_notes,
               e.name, p.name
        FROM assignments a
        JOIN employees e ON e.id = a.employee_id
        JOIN projects p ON p.id = a.project_id`

func scanAssignment(row pgx.Row, a *domain.Assignment) error {
	return row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.ProjectID,
		&a.AssignedAt,
		&a.AllottedHours,
		&a.Completed,
		&a.CompletedAt,
		&a.HoursWorked,
		&a.CompletionNotes,
		&a.EmployeeName,
		&a.ProjectName,
	)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	query := assignmentSelect + ` WHERE a.id=$1`

	var assignment domain.Assignment
	if err := scanAssignment(r.pool.QueryRow(ctx, query, id), &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error) {
	query := assignmentSelect
	args := []any{}
	clauses := []string{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("a.employee_id=$%d", len(args)))
	}
	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		clauses = append(clauses, fmt.Sprintf("a.project_id=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY a.assigned_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		if err := scanAssignment(rows, &assignment); err != nil {
			return nil, err
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}
