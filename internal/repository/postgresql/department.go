package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT d.id, d.name, d.description, d.head_of_department_id, d.created_at, d.updated_at,
		   CASE WHEN h.id IS NULL THEN NULL ELSE h.first_name || ' ' || h.last_name END,
		   (SELECT COUNT(*) FROM employees m WHERE m.department_id = d.id)
	FROM departments d
	LEFT JOIN employees h ON h.id = d.head_of_department_id
`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.HeadOfDepartmentID,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.HeadOfDepartmentName,
		&d.EmployeeCount,
	)
	return d, err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name, description, head_of_department_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, head_of_department_id, created_at, updated_at
	`

	var created department.Department
	err := q.QueryRow(ctx, query, dept.Name, dept.Description, dept.HeadOfDepartmentID).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.HeadOfDepartmentID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return department.Department{}, err
	}
	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id int64) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDepartment(q.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, departmentSelect+` ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, dept department.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, description = $2, head_of_department_id = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, dept.Name, dept.Description, dept.HeadOfDepartmentID, dept.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
