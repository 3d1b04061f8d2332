// Package servicetest provides in-memory repositories for service tests.
package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// Store holds every table of the fake database. Repositories returned by its
// accessors share it, so joins behave like the SQL ones.
type Store struct {
	mu     sync.Mutex
	nextID int64

	Users       map[int64]user.User
	Employees   map[int64]employee.Employee
	Documents   []employee.Document
	Departments map[int64]department.Department
	Leaves      map[int64]leave.LeaveRequest
	Attendances map[int64]attendance.Attendance
	Projects    map[int64]project.Project
	Members     map[int64]map[int64]bool
	Tasks       map[int64]project.Task
	Reviews     []project.PerformanceReview
	Meetings    map[int64]meeting.Meeting
	Invitations map[int64]meeting.Invitation
	Revoked     map[string]int64

	// Failures makes the named operation (e.g. "employee.CreateDocument")
	// return the error instead of running.
	Failures map[string]error
}

func NewStore() *Store {
	return &Store{
		Users:       map[int64]user.User{},
		Employees:   map[int64]employee.Employee{},
		Departments: map[int64]department.Department{},
		Leaves:      map[int64]leave.LeaveRequest{},
		Attendances: map[int64]attendance.Attendance{},
		Projects:    map[int64]project.Project{},
		Members:     map[int64]map[int64]bool{},
		Tasks:       map[int64]project.Task{},
		Meetings:    map[int64]meeting.Meeting{},
		Invitations: map[int64]meeting.Invitation{},
		Revoked:     map[string]int64{},
		Failures:    map[string]error{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) fail(op string) error {
	return s.Failures[op]
}

// Tx runs fn directly and counts the calls.
type Tx struct {
	Calls int
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// Seeding helpers. They bypass Failures.

func (s *Store) AddDepartment(name string, headID *int64) department.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := department.Department{ID: s.id(), Name: name, HeadOfDepartmentID: headID}
	s.Departments[d.ID] = d
	return d
}

// SetHead makes headID the head of departmentID.
func (s *Store) SetHead(departmentID, headID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.Departments[departmentID]
	d.HeadOfDepartmentID = &headID
	s.Departments[departmentID] = d
}

// AddEmployee creates a login with role and the employee record e, joined on
// 2024-01-01 unless e says otherwise.
func (s *Store) AddEmployee(e employee.Employee, role user.Role) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user.User{ID: s.id(), Username: e.FirstName, PasswordHash: "x", Role: role}
	s.Users[u.ID] = u

	e.ID = s.id()
	e.UserID = u.ID
	if e.DateOfJoining.IsZero() {
		e.DateOfJoining = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if e.Email == "" {
		e.Email = e.FirstName + "@example.com"
	}
	s.Employees[e.ID] = e
	u.EmployeeID = &e.ID
	s.Users[u.ID] = u
	return s.employee(e.ID)
}

// Principal returns the caller identity of employeeID.
func (s *Store) Principal(employeeID int64) user.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.employee(employeeID)
	id := e.ID
	return user.Principal{UserID: e.UserID, Username: e.Username, Role: e.Role, EmployeeID: &id}
}

func (s *Store) AddLeave(r leave.LeaveRequest) leave.LeaveRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	if r.DurationType == "" {
		r.DurationType = leave.DurationFullDay
	}
	s.Leaves[r.ID] = r
	return s.leave(r.ID)
}

func (s *Store) AddAttendance(a attendance.Attendance) attendance.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	s.Attendances[a.ID] = a
	return a
}

func (s *Store) AddProject(p project.Project, members ...int64) project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	if p.Status == "" {
		p.Status = project.StatusAssigned
	}
	s.Projects[p.ID] = p
	s.Members[p.ID] = map[int64]bool{}
	for _, m := range members {
		s.Members[p.ID][m] = true
	}
	return p
}

func (s *Store) AddTask(t project.Task) project.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	s.Tasks[t.ID] = t
	return t
}

// employee returns the stored employee with its joins filled. Callers hold mu.
func (s *Store) employee(id int64) employee.Employee {
	e := s.Employees[id]
	if u, ok := s.Users[e.UserID]; ok {
		e.Username = u.Username
		e.Role = u.Role
	}
	e.DepartmentName, e.DepartmentHeadID = nil, nil
	if e.DepartmentID != nil {
		if d, ok := s.Departments[*e.DepartmentID]; ok {
			name := d.Name
			e.DepartmentName = &name
			e.DepartmentHeadID = d.HeadOfDepartmentID
		}
	}
	return e
}

// leave returns the stored request with its joins filled. Callers hold mu.
func (s *Store) leave(id int64) leave.LeaveRequest {
	r := s.Leaves[id]
	e := s.employee(r.EmployeeID)
	r.EmployeeName = e.FullName()
	r.EmployeeDepartmentID = e.DepartmentID
	return r
}
