package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

const projectSelect = `
	SELECT p.id, p.name, p.description, p.deadline, p.status, p.manager_id, p.created_at,
		   (SELECT COUNT(*) FROM project_members pm WHERE pm.project_id = p.id)
	FROM projects p
`

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Deadline,
		&p.Status,
		&p.ManagerID,
		&p.CreatedAt,
		&p.MemberCount,
	)
	return p, err
}

func (r *projectRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Create implements project.ProjectRepository.
func (r *projectRepositoryImpl) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (name, description, deadline, status, manager_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	created := p
	if err := q.QueryRow(ctx, query, p.Name, p.Description, p.Deadline, p.Status, p.ManagerID).Scan(&created.ID, &created.CreatedAt); err != nil {
		return project.Project{}, err
	}
	return created, nil
}

// GetByID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id int64) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanProject(q.QueryRow(ctx, projectSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, err
	}
	return p, nil
}

// ListByManager implements project.ProjectRepository.
func (r *projectRepositoryImpl) ListByManager(ctx context.Context, managerID int64) ([]project.Project, error) {
	return r.list(ctx, projectSelect+` WHERE p.manager_id = $1 ORDER BY p.created_at DESC`, managerID)
}

// ListByMember implements project.ProjectRepository.
func (r *projectRepositoryImpl) ListByMember(ctx context.Context, employeeID int64) ([]project.Project, error) {
	return r.list(ctx, projectSelect+`
		WHERE EXISTS (SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.employee_id = $1)
		   OR EXISTS (SELECT 1 FROM project_tasks t WHERE t.project_id = p.id AND t.assigned_employee_id = $1)
		ORDER BY p.deadline NULLS LAST, p.created_at DESC
	`, employeeID)
}

// UpdateStatus implements project.ProjectRepository.
func (r *projectRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status project.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE projects SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

// Delete implements project.ProjectRepository.
func (r *projectRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

// ListMembers implements project.ProjectRepository.
func (r *projectRepositoryImpl) ListMembers(ctx context.Context, projectID int64) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeColumns + employeeFrom + `
		INNER JOIN project_members pm ON pm.employee_id = e.id
		WHERE pm.project_id = $1
		ORDER BY e.first_name, e.last_name
	`
	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, e)
	}
	return members, rows.Err()
}

// AddMember implements project.ProjectRepository.
func (r *projectRepositoryImpl) AddMember(ctx context.Context, projectID, employeeID int64) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `INSERT INTO project_members (project_id, employee_id) VALUES ($1, $2)`, projectID, employeeID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return project.ErrAlreadyMember
		case isForeignKeyViolation(err):
			return employee.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

// RemoveMember implements project.ProjectRepository.
func (r *projectRepositoryImpl) RemoveMember(ctx context.Context, projectID, employeeID int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1 AND employee_id = $2`, projectID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return project.ErrNotMember
	}
	return nil
}

// ClearMembers implements project.ProjectRepository.
func (r *projectRepositoryImpl) ClearMembers(ctx context.Context, projectID int64) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1`, projectID)
	return err
}

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) project.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskSelect = `
	SELECT t.id, t.project_id, t.description, t.is_completed, t.assigned_employee_id,
		   p.name,
		   CASE WHEN e.id IS NULL THEN NULL ELSE e.first_name || ' ' || e.last_name END
	FROM project_tasks t
	INNER JOIN projects p ON p.id = t.project_id
	LEFT JOIN employees e ON e.id = t.assigned_employee_id
`

func scanTask(row pgx.Row) (project.Task, error) {
	var t project.Task
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Description,
		&t.IsCompleted,
		&t.AssignedEmployeeID,
		&t.ProjectName,
		&t.AssignedEmployeeName,
	)
	return t, err
}

func (r *taskRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]project.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []project.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Create implements project.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t project.Task) (project.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO project_tasks (project_id, description, is_completed, assigned_employee_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	created := t
	if err := q.QueryRow(ctx, query, t.ProjectID, t.Description, t.IsCompleted, t.AssignedEmployeeID).Scan(&created.ID); err != nil {
		if isForeignKeyViolation(err) {
			return project.Task{}, employee.ErrEmployeeNotFound
		}
		return project.Task{}, err
	}
	return created, nil
}

// GetByID implements project.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id int64) (project.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Task{}, project.ErrTaskNotFound
		}
		return project.Task{}, err
	}
	return t, nil
}

// ListByProject implements project.TaskRepository.
func (r *taskRepositoryImpl) ListByProject(ctx context.Context, projectID int64) ([]project.Task, error) {
	return r.list(ctx, taskSelect+` WHERE t.project_id = $1 ORDER BY t.id`, projectID)
}

// ListByAssignee implements project.TaskRepository.
func (r *taskRepositoryImpl) ListByAssignee(ctx context.Context, employeeID int64) ([]project.Task, error) {
	return r.list(ctx, taskSelect+` WHERE t.assigned_employee_id = $1 ORDER BY t.is_completed, t.id`, employeeID)
}

// MarkCompleted implements project.TaskRepository.
func (r *taskRepositoryImpl) MarkCompleted(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE project_tasks SET is_completed = TRUE WHERE id = $1 AND is_completed = FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return project.ErrTaskCompleted
	}
	return nil
}

type reviewRepositoryImpl struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) project.ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

// Create implements project.ReviewRepository.
func (r *reviewRepositoryImpl) Create(ctx context.Context, review project.PerformanceReview) (project.PerformanceReview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_reviews (project_id, employee_id, manager_id, rating, feedback, review_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	created := review
	err := q.QueryRow(ctx, query,
		review.ProjectID,
		review.EmployeeID,
		review.ManagerID,
		review.Rating,
		review.Feedback,
		review.ReviewDate,
	).Scan(&created.ID)
	if err != nil {
		return project.PerformanceReview{}, err
	}
	return created, nil
}

// ListByEmployee implements project.ReviewRepository.
func (r *reviewRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]project.PerformanceReview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, project_id, employee_id, manager_id, rating, feedback, review_date
		FROM performance_reviews
		WHERE employee_id = $1
		ORDER BY review_date DESC, id DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []project.PerformanceReview
	for rows.Next() {
		var pr project.PerformanceReview
		if err := rows.Scan(&pr.ID, &pr.ProjectID, &pr.EmployeeID, &pr.ManagerID, &pr.Rating, &pr.Feedback, &pr.ReviewDate); err != nil {
			return nil, err
		}
		reviews = append(reviews, pr)
	}
	return reviews, rows.Err()
}
