package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.first_name, e.last_name, e.email, e.phone_number, e.department_id,
	e.position, e.date_of_joining, e.reporting_hr_id, e.address_line1, e.city, e.postal_code,
	e.country, e.highest_qualification, e.photo_path, e.created_at, e.updated_at,
	u.username, u.role, d.name, d.head_of_department_id
`

const employeeFrom = `
	FROM employees e
	INNER JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.PhoneNumber,
		&e.DepartmentID,
		&e.Position,
		&e.DateOfJoining,
		&e.ReportingHRID,
		&e.AddressLine1,
		&e.City,
		&e.PostalCode,
		&e.Country,
		&e.HighestQualification,
		&e.PhotoPath,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.Username,
		&e.Role,
		&e.DepartmentName,
		&e.DepartmentHeadID,
	)
	return e, err
}

func (r *employeeRepositoryImpl) queryOne(ctx context.Context, where string, args ...interface{}) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, "SELECT "+employeeColumns+employeeFrom+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) queryMany(ctx context.Context, where string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+employeeColumns+employeeFrom+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, first_name, last_name, email, phone_number, department_id, position,
			date_of_joining, reporting_hr_id, address_line1, city, postal_code, country,
			highest_qualification, photo_path
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	created := newEmployee
	err := q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.Email,
		newEmployee.PhoneNumber,
		newEmployee.DepartmentID,
		newEmployee.Position,
		newEmployee.DateOfJoining,
		newEmployee.ReportingHRID,
		newEmployee.AddressLine1,
		newEmployee.City,
		newEmployee.PostalCode,
		newEmployee.Country,
		newEmployee.HighestQualification,
		newEmployee.PhotoPath,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, err
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	return r.queryOne(ctx, ` WHERE e.id = $1`, id)
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID int64) (employee.Employee, error) {
	return r.queryOne(ctx, ` WHERE e.user_id = $1`, userID)
}

// ExistsByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4, department_id = $5,
			position = $6, reporting_hr_id = $7, address_line1 = $8, city = $9, postal_code = $10,
			country = $11, highest_qualification = $12, updated_at = NOW()
		WHERE id = $13
	`
	tag, err := q.Exec(ctx, query,
		e.FirstName,
		e.LastName,
		e.Email,
		e.PhoneNumber,
		e.DepartmentID,
		e.Position,
		e.ReportingHRID,
		e.AddressLine1,
		e.City,
		e.PostalCode,
		e.Country,
		e.HighestQualification,
		e.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmailExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.DepartmentID != nil {
		baseWhere += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Role != nil {
		baseWhere += fmt.Sprintf(" AND u.role = $%d", argIdx)
		args = append(args, *filter.Role)
		argIdx++
	}
	if filter.Search != nil {
		baseWhere += fmt.Sprintf(" AND (e.first_name || ' ' || e.last_name ILIKE $%d OR e.email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+employeeFrom+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	where := baseWhere + fmt.Sprintf(" ORDER BY e.first_name, e.last_name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	employees, err := r.queryMany(ctx, where, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListByDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByDepartment(ctx context.Context, departmentID int64) ([]employee.Employee, error) {
	return r.queryMany(ctx, ` WHERE e.department_id = $1 ORDER BY e.first_name, e.last_name`, departmentID)
}

// ListUnassigned implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListUnassigned(ctx context.Context) ([]employee.Employee, error) {
	return r.queryMany(ctx, ` WHERE e.department_id IS NULL ORDER BY e.first_name, e.last_name`)
}

// ListByRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]employee.Employee, error) {
	return r.queryMany(ctx, ` WHERE u.role = $1 ORDER BY e.first_name, e.last_name`, role)
}

// SetDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetDepartment(ctx context.Context, id int64, departmentID *int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET department_id = $1, updated_at = NOW() WHERE id = $2`, departmentID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// CreateDocument implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CreateDocument(ctx context.Context, doc employee.Document) (employee.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_documents (employee_id, document_name, file_path)
		VALUES ($1, $2, $3)
		RETURNING id, uploaded_at
	`
	created := doc
	if err := q.QueryRow(ctx, query, doc.EmployeeID, doc.DocumentName, doc.FilePath).Scan(&created.ID, &created.UploadedAt); err != nil {
		return employee.Document{}, err
	}
	return created, nil
}

// ListDocuments implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListDocuments(ctx context.Context, employeeID int64) ([]employee.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, document_name, file_path, uploaded_at
		FROM employee_documents
		WHERE employee_id = $1
		ORDER BY uploaded_at
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []employee.Document
	for rows.Next() {
		var d employee.Document
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.DocumentName, &d.FilePath, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
