package servicetest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

func (s *Store) UserRepository() user.UserRepository             { return userRepo{s} }
func (s *Store) EmployeeRepository() employee.EmployeeRepository { return employeeRepo{s} }
func (s *Store) DepartmentRepository() department.DepartmentRepository {
	return departmentRepo{s}
}
func (s *Store) LeaveRepository() leave.LeaveRequestRepository { return leaveRepo{s} }
func (s *Store) AttendanceRepository() attendance.AttendanceRepository {
	return attendanceRepo{s}
}
func (s *Store) ProjectRepository() project.ProjectRepository       { return projectRepo{s} }
func (s *Store) TaskRepository() project.TaskRepository             { return taskRepo{s} }
func (s *Store) ReviewRepository() project.ReviewRepository         { return reviewRepo{s} }
func (s *Store) MeetingRepository() meeting.MeetingRepository       { return meetingRepo{s} }
func (s *Store) InvitationRepository() meeting.InvitationRepository { return invitationRepo{s} }
func (s *Store) RevokedTokenRepository() auth.RevokedTokenRepository {
	return revokedRepo{s}
}

type userRepo struct{ *Store }

func (r userRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("user.Create"); err != nil {
		return user.User{}, err
	}
	for _, existing := range r.Users {
		if strings.EqualFold(existing.Username, u.Username) {
			return user.User{}, user.ErrUsernameExists
		}
	}
	u.ID = r.id()
	r.Users[u.ID] = u
	return u, nil
}

func (r userRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r userRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.Users[userID] = u
	return nil
}

type employeeRepo struct{ *Store }

func (r employeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("employee.Create"); err != nil {
		return employee.Employee{}, err
	}
	for _, existing := range r.Employees {
		if strings.EqualFold(existing.Email, e.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	e.ID = r.id()
	r.Employees[e.ID] = e
	if u, ok := r.Users[e.UserID]; ok {
		u.EmployeeID = &e.ID
		r.Users[u.ID] = u
	}
	return r.employee(e.ID), nil
}

func (r employeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Employees[id]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.employee(id), nil
}

func (r employeeRepo) GetByUserID(ctx context.Context, userID int64) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.Employees {
		if e.UserID == userID {
			return r.employee(id), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r employeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Employees {
		if strings.EqualFold(e.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r employeeRepo) Update(ctx context.Context, e employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Employees[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.Employees[e.ID] = e
	return nil
}

// sorted returns the hydrated employees matching keep, by name.
func (r employeeRepo) sorted(keep func(employee.Employee) bool) []employee.Employee {
	var out []employee.Employee
	for id := range r.Employees {
		e := r.employee(id)
		if keep(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return cmp.Or(cmp.Compare(a.FirstName, b.FirstName), cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.ID, b.ID))
	})
	return out
}

func (r employeeRepo) List(ctx context.Context, f employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(e employee.Employee) bool {
		if f.DepartmentID != nil && !e.InDepartment(f.DepartmentID) {
			return false
		}
		if f.Role != nil && e.Role != *f.Role {
			return false
		}
		if f.Search != nil {
			q := strings.ToLower(*f.Search)
			return strings.Contains(strings.ToLower(e.FullName()), q) || strings.Contains(strings.ToLower(e.Email), q)
		}
		return true
	})
	total := int64(len(all))
	start := min(f.Offset(), len(all))
	end := min(start+f.Limit, len(all))
	return all[start:end], total, nil
}

func (r employeeRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(e employee.Employee) bool { return e.InDepartment(&departmentID) }), nil
}

func (r employeeRepo) ListUnassigned(ctx context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(e employee.Employee) bool { return e.DepartmentID == nil }), nil
}

func (r employeeRepo) ListByRole(ctx context.Context, role user.Role) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(e employee.Employee) bool { return e.Role == role }), nil
}

func (r employeeRepo) SetDepartment(ctx context.Context, id int64, departmentID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.DepartmentID = departmentID
	r.Employees[id] = e
	return nil
}

func (r employeeRepo) CreateDocument(ctx context.Context, doc employee.Document) (employee.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("employee.CreateDocument"); err != nil {
		return employee.Document{}, err
	}
	doc.ID = r.id()
	doc.UploadedAt = time.Now()
	r.Documents = append(r.Documents, doc)
	return doc, nil
}

func (r employeeRepo) ListDocuments(ctx context.Context, employeeID int64) ([]employee.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []employee.Document
	for _, d := range r.Documents {
		if d.EmployeeID == employeeID {
			out = append(out, d)
		}
	}
	return out, nil
}

type departmentRepo struct{ *Store }

func (r departmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = r.id()
	r.Departments[d.ID] = d
	return d, nil
}

func (r departmentRepo) get(id int64) (department.Department, bool) {
	d, ok := r.Departments[id]
	if !ok {
		return d, false
	}
	d.HeadOfDepartmentName = nil
	if d.HeadOfDepartmentID != nil {
		if _, ok := r.Employees[*d.HeadOfDepartmentID]; ok {
			name := r.employee(*d.HeadOfDepartmentID).FullName()
			d.HeadOfDepartmentName = &name
		}
	}
	d.EmployeeCount = 0
	for _, e := range r.Employees {
		if e.InDepartment(&d.ID) {
			d.EmployeeCount++
		}
	}
	return d, true
}

func (r departmentRepo) GetByID(ctx context.Context, id int64) (department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.get(id)
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (r departmentRepo) List(ctx context.Context) ([]department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []department.Department
	for id := range r.Departments {
		d, _ := r.get(id)
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b department.Department) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r departmentRepo) Update(ctx context.Context, d department.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Departments[d.ID]; !ok {
		return department.ErrDepartmentNotFound
	}
	r.Departments[d.ID] = d
	return nil
}

type leaveRepo struct{ *Store }

func (r leaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = r.id()
	r.Leaves[req.ID] = req
	return r.leave(req.ID), nil
}

func (r leaveRepo) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Leaves[id]; !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.leave(id), nil
}

func (r leaveRepo) List(ctx context.Context, f leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for id := range r.Leaves {
		l := r.leave(id)
		switch {
		case f.EmployeeID != nil && l.EmployeeID != *f.EmployeeID,
			f.ExcludeEmployeeID != nil && l.EmployeeID == *f.ExcludeEmployeeID,
			f.DepartmentID != nil && (l.EmployeeDepartmentID == nil || *l.EmployeeDepartmentID != *f.DepartmentID),
			len(f.Statuses) > 0 && !slices.Contains(f.Statuses, l.Status),
			f.ActiveOn != nil && !l.Covers(*f.ActiveOn),
			f.From != nil && attendance.DateOnly(l.EndDate).Before(attendance.DateOnly(*f.From)),
			f.To != nil && attendance.DateOnly(l.StartDate).After(attendance.DateOnly(*f.To)):
			continue
		}
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b leave.LeaveRequest) int {
		c := cmp.Or(a.RequestDate.Compare(b.RequestDate), cmp.Compare(a.ID, b.ID))
		if f.OldestFirst {
			return c
		}
		return -c
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r leaveRepo) UpdateDecision(ctx context.Context, req leave.LeaveRequest, expected leave.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.Leaves[req.ID]
	if !ok || current.Status != expected {
		return leave.ErrInvalidTransition
	}
	current.Status = req.Status
	current.ManagerApprovedByID = req.ManagerApprovedByID
	current.HRApprovedByID = req.HRApprovedByID
	r.Leaves[req.ID] = current
	return nil
}

type attendanceRepo struct{ *Store }

func (r attendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := attendance.DateOnly(date)
	for _, a := range r.Attendances {
		if a.EmployeeID == employeeID && attendance.DateOnly(a.Date).Equal(day) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r attendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if _, err := r.GetByEmployeeAndDate(ctx, a.EmployeeID, a.Date); err == nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}
	return r.AddAttendance(a), nil
}

func (r attendanceRepo) SetClockIn(ctx context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Attendances[id]
	if !ok || a.ClockIn != nil {
		return attendance.ErrAlreadyClockedIn
	}
	a.ClockIn = &at
	a.Status = attendance.StatusPresent
	r.Attendances[id] = a
	return nil
}

func (r attendanceRepo) SetClockOut(ctx context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Attendances[id]
	if !ok || a.ClockIn == nil || a.ClockOut != nil {
		return attendance.ErrAlreadyClockedOut
	}
	a.ClockOut = &at
	r.Attendances[id] = a
	return nil
}

func (r attendanceRepo) ListRecent(ctx context.Context, employeeID int64, limit int) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.Attendances {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b attendance.Attendance) int { return b.Date.Compare(a.Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r attendanceRepo) ListInRange(ctx context.Context, employeeIDs []int64, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, to = attendance.DateOnly(from), attendance.DateOnly(to)
	var out []attendance.Attendance
	for _, a := range r.Attendances {
		d := attendance.DateOnly(a.Date)
		if slices.Contains(employeeIDs, a.EmployeeID) && !d.Before(from) && !d.After(to) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b attendance.Attendance) int {
		return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(a.EmployeeID, b.EmployeeID))
	})
	return out, nil
}

type projectRepo struct{ *Store }

func (r projectRepo) project(id int64) project.Project {
	p := r.Projects[id]
	p.MemberCount = len(r.Members[id])
	return p
}

func (r projectRepo) Create(ctx context.Context, p project.Project) (project.Project, error) {
	return r.AddProject(p), nil
}

func (r projectRepo) GetByID(ctx context.Context, id int64) (project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Projects[id]; !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return r.project(id), nil
}

func (r projectRepo) list(keep func(project.Project) bool) []project.Project {
	var out []project.Project
	for id := range r.Projects {
		if p := r.project(id); keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b project.Project) int { return cmp.Compare(b.ID, a.ID) })
	return out
}

func (r projectRepo) ListByManager(ctx context.Context, managerID int64) ([]project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(p project.Project) bool { return p.ManagerID == managerID }), nil
}

func (r projectRepo) ListByMember(ctx context.Context, employeeID int64) ([]project.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(p project.Project) bool {
		if r.Members[p.ID][employeeID] {
			return true
		}
		for _, t := range r.Tasks {
			if t.ProjectID == p.ID && t.AssignedTo(employeeID) {
				return true
			}
		}
		return false
	}), nil
}

func (r projectRepo) UpdateStatus(ctx context.Context, id int64, status project.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("project.UpdateStatus"); err != nil {
		return err
	}
	p, ok := r.Projects[id]
	if !ok {
		return project.ErrProjectNotFound
	}
	p.Status = status
	r.Projects[id] = p
	return nil
}

func (r projectRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Projects[id]; !ok {
		return project.ErrProjectNotFound
	}
	delete(r.Projects, id)
	delete(r.Members, id)
	for tid, t := range r.Tasks {
		if t.ProjectID == id {
			delete(r.Tasks, tid)
		}
	}
	return nil
}

func (r projectRepo) ListMembers(ctx context.Context, projectID int64) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []employee.Employee
	for id := range r.Members[projectID] {
		out = append(out, r.employee(id))
	}
	slices.SortFunc(out, func(a, b employee.Employee) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r projectRepo) AddMember(ctx context.Context, projectID, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Members[projectID] == nil {
		r.Members[projectID] = map[int64]bool{}
	}
	if r.Members[projectID][employeeID] {
		return project.ErrAlreadyMember
	}
	r.Members[projectID][employeeID] = true
	return nil
}

func (r projectRepo) RemoveMember(ctx context.Context, projectID, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.Members[projectID][employeeID] {
		return project.ErrNotMember
	}
	delete(r.Members[projectID], employeeID)
	return nil
}

func (r projectRepo) ClearMembers(ctx context.Context, projectID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Members[projectID] = map[int64]bool{}
	return nil
}

type taskRepo struct{ *Store }

func (r taskRepo) Create(ctx context.Context, t project.Task) (project.Task, error) {
	return r.AddTask(t), nil
}

func (r taskRepo) GetByID(ctx context.Context, id int64) (project.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.Tasks[id]
	if !ok {
		return project.Task{}, project.ErrTaskNotFound
	}
	return t, nil
}

func (r taskRepo) list(keep func(project.Task) bool) []project.Task {
	var out []project.Task
	for _, t := range r.Tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b project.Task) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r taskRepo) ListByProject(ctx context.Context, projectID int64) ([]project.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(t project.Task) bool { return t.ProjectID == projectID }), nil
}

func (r taskRepo) ListByAssignee(ctx context.Context, employeeID int64) ([]project.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(t project.Task) bool { return t.AssignedTo(employeeID) }), nil
}

func (r taskRepo) MarkCompleted(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.Tasks[id]
	if !ok || t.IsCompleted {
		return project.ErrTaskCompleted
	}
	t.IsCompleted = true
	r.Tasks[id] = t
	return nil
}

type reviewRepo struct{ *Store }

func (r reviewRepo) Create(ctx context.Context, rev project.PerformanceReview) (project.PerformanceReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev.ID = r.id()
	r.Reviews = append(r.Reviews, rev)
	return rev, nil
}

func (r reviewRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]project.PerformanceReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []project.PerformanceReview
	for _, rev := range r.Reviews {
		if rev.EmployeeID == employeeID {
			out = append(out, rev)
		}
	}
	return out, nil
}

type meetingRepo struct{ *Store }

func (r meetingRepo) Create(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.id()
	r.Meetings[m.ID] = m
	return m, nil
}

func (r meetingRepo) ListByCreator(ctx context.Context, creatorID int64) ([]meeting.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []meeting.Meeting
	for _, m := range r.Meetings {
		if m.CreatedByID != creatorID {
			continue
		}
		m.Invitations = nil
		for _, inv := range r.Invitations {
			if inv.MeetingID == m.ID {
				inv.EmployeeName = r.employee(inv.EmployeeID).FullName()
				m.Invitations = append(m.Invitations, inv)
			}
		}
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b meeting.Meeting) int { return b.StartTime.Compare(a.StartTime) })
	return out, nil
}

type invitationRepo struct{ *Store }

func (r invitationRepo) Create(ctx context.Context, inv meeting.Invitation) (meeting.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("invitation.Create"); err != nil {
		return meeting.Invitation{}, err
	}
	inv.ID = r.id()
	r.Invitations[inv.ID] = inv
	return inv, nil
}

func (r invitationRepo) withMeeting(inv meeting.Invitation) meeting.Invitation {
	m := r.Meetings[inv.MeetingID]
	inv.Meeting = &m
	return inv
}

func (r invitationRepo) GetByID(ctx context.Context, id int64) (meeting.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.Invitations[id]
	if !ok {
		return meeting.Invitation{}, meeting.ErrInvitationNotFound
	}
	return r.withMeeting(inv), nil
}

func (r invitationRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]meeting.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []meeting.Invitation
	for _, inv := range r.Invitations {
		if inv.EmployeeID == employeeID {
			out = append(out, r.withMeeting(inv))
		}
	}
	slices.SortFunc(out, func(a, b meeting.Invitation) int { return a.Meeting.StartTime.Compare(b.Meeting.StartTime) })
	return out, nil
}

func (r invitationRepo) UpdateStatus(ctx context.Context, id int64, status meeting.InvitationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.Invitations[id]
	if !ok || inv.Status != meeting.InvitationPending {
		return meeting.ErrAlreadyResponded
	}
	inv.Status = status
	r.Invitations[id] = inv
	return nil
}

type revokedRepo struct{ *Store }

func (r revokedRepo) Revoke(ctx context.Context, token string, expiresAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Revoked[token] = expiresAt
	return nil
}

func (r revokedRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Revoked[token]
	return ok, nil
}

func (r revokedRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for token, exp := range r.Revoked {
		if exp < now.Unix() {
			delete(r.Revoked, token)
			n++
		}
	}
	return n, nil
}
