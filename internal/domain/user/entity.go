package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleManager  Role = "manager"  // Department head, first approval stage
	RoleHR       Role = "hr"       // Human resources, final approval stage
)

// Roles lists every assignable role.
var Roles = []Role{RoleEmployee, RoleManager, RoleHR}

func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeID *int64
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID     int64
	Username   string
	Role       Role
	EmployeeID *int64
}

func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Employee returns the caller's employee id or ErrNoEmployeeProfile.
func (p Principal) Employee() (int64, error) {
	if p.EmployeeID == nil {
		return 0, ErrNoEmployeeProfile
	}
	return *p.EmployeeID, nil
}
