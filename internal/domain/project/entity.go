package project

import "time"

type Status string

const (
	StatusAssigned   Status = "Assigned"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

type Project struct {
	ID          int64
	Name        string
	Description *string
	Deadline    *time.Time
	Status      Status
	ManagerID   int64
	CreatedAt   time.Time

	// Join
	MemberCount int
}

func (p Project) OwnedBy(employeeID int64) bool {
	return p.ManagerID == employeeID
}

type Task struct {
	ID                 int64
	ProjectID          int64
	Description        string
	IsCompleted        bool
	AssignedEmployeeID *int64

	// Join
	ProjectName          string
	AssignedEmployeeName *string
}

// AssignedTo reports whether the task belongs to employeeID.
func (t Task) AssignedTo(employeeID int64) bool {
	return t.AssignedEmployeeID != nil && *t.AssignedEmployeeID == employeeID
}

type PerformanceReview struct {
	ID         int64
	ProjectID  int64
	EmployeeID int64
	ManagerID  int64
	Rating     int
	Feedback   *string
	ReviewDate time.Time
}

const (
	MinRating = 1
	MaxRating = 5
)
