package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	attendanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/hrms-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/hrms-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	meetingService "github.com/cmlabs-hris/hrms-backend-go/internal/service/meeting"
	projectService "github.com/cmlabs-hris/hrms-backend-go/internal/service/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t       *testing.T
	store   *servicetest.Store
	jwt     jwt.Service
	handler http.Handler

	manager employee.Employee
	staff   employee.Employee
	hr      employee.Employee
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := servicetest.NewStore()
	tx := &servicetest.Tx{}

	fileStorage, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)
	fileService := file.NewFileService(fileStorage)
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h", false)

	dept := store.AddDepartment("Engineering", nil)
	s := &testServer{t: t, store: store, jwt: jwtService}
	s.manager = store.AddEmployee(employee.Employee{FirstName: "Max", LastName: "Manager", DepartmentID: &dept.ID}, user.RoleManager)
	store.SetHead(dept.ID, s.manager.ID)
	s.hr = store.AddEmployee(employee.Employee{FirstName: "Hana", LastName: "HR"}, user.RoleHR)
	s.staff = store.AddEmployee(employee.Employee{FirstName: "Sue", LastName: "Staff", DepartmentID: &dept.ID, ReportingHRID: &s.hr.ID}, user.RoleEmployee)

	employees := store.EmployeeRepository()
	leaves := store.LeaveRepository()
	s.handler = NewRouter(
		RouterOptions{FrontendURL: "http://localhost:3000", Env: "test", LogLevel: slog.LevelError},
		jwtService,
		store.RevokedTokenRepository(),
		Handlers{
			Auth:       NewAuthHandler(jwtService, authService.NewAuthService(store.UserRepository(), store.RevokedTokenRepository(), jwtService)),
			Department: NewDepartmentHandler(departmentService.NewDepartmentService(store.DepartmentRepository(), employees)),
			Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(tx, store.UserRepository(), employees, store.DepartmentRepository(), fileService)),
			Leave:      NewLeaveHandler(leaveService.NewLeaveService(leaves, employees)),
			Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(store.AttendanceRepository(), employees, leaves)),
			Project:    NewProjectHandler(projectService.NewProjectService(tx, store.ProjectRepository(), store.TaskRepository(), store.ReviewRepository(), employees)),
			Meeting:    NewMeetingHandler(meetingService.NewMeetingService(tx, store.MeetingRepository(), store.InvitationRepository(), employees)),
			File:       NewFileHandler(fileService),
		},
	)
	return s
}

// tokenFor issues an access token for a seeded employee.
func (s *testServer) tokenFor(e employee.Employee) string {
	p := s.store.Principal(e.ID)
	token, _, err := s.jwt.GenerateAccessToken(jwt.AccessClaims{
		UserID:     p.UserID,
		Username:   p.Username,
		Role:       p.Role,
		EmployeeID: p.EmployeeID,
	})
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestRouter_LoginSetsSessionCookie(t *testing.T) {
	s := newTestServer(t)
	hash, err := authService.HashPassword("password123")
	require.NoError(t, err)
	u := s.store.Users[s.manager.UserID]
	u.PasswordHash = hash
	s.store.Users[u.ID] = u

	rec, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "MAX", "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	var login struct {
		RedirectURL string `json:"redirect_url"`
		Role        string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "/manager", login.RedirectURL)
	assert.Equal(t, "manager", login.Role)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwt.CookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	rec, env = s.do(http.MethodGet, "/api/v1/me", session.Value, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, s.manager.ID, me.ID)
}

func TestRouter_LoginWrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "Max", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid username or password", env.Error.Message)
}

func TestRouter_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(s.staff)

	rec, _ := s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, s.store.Revoked, 1)

	rec, env := s.do(http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "token has been revoked", env.Error.Message)
}

func TestRouter_RoleGates(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		who    employee.Employee
		method string
		path   string
		want   int
	}{
		{"employee cannot list departments", s.staff, http.MethodGet, "/api/v1/departments", http.StatusForbidden},
		{"manager cannot list departments", s.manager, http.MethodGet, "/api/v1/departments", http.StatusForbidden},
		{"hr lists departments", s.hr, http.MethodGet, "/api/v1/departments", http.StatusOK},
		{"employee cannot manage employees", s.staff, http.MethodGet, "/api/v1/employees", http.StatusForbidden},
		{"hr lists employees", s.hr, http.MethodGet, "/api/v1/employees", http.StatusOK},
		{"employee has no team", s.staff, http.MethodGet, "/api/v1/team", http.StatusForbidden},
		{"manager sees team", s.manager, http.MethodGet, "/api/v1/team", http.StatusOK},
		{"employee cannot see hr queue", s.staff, http.MethodGet, "/api/v1/leave/hr-queue", http.StatusForbidden},
		{"manager cannot see hr queue", s.manager, http.MethodGet, "/api/v1/leave/hr-queue", http.StatusForbidden},
		{"employee cannot see who is on leave", s.staff, http.MethodGet, "/api/v1/leave/on-leave-today", http.StatusForbidden},
		{"manager sees department on leave", s.manager, http.MethodGet, "/api/v1/leave/on-leave-today", http.StatusOK},
		{"hr sees everyone on leave", s.hr, http.MethodGet, "/api/v1/leave/on-leave-today", http.StatusOK},
		{"employee cannot schedule meetings", s.staff, http.MethodGet, "/api/v1/meetings", http.StatusForbidden},
		{"employee sees own invitations", s.staff, http.MethodGet, "/api/v1/meetings/invitations", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := s.do(tt.method, tt.path, s.tokenFor(tt.who), nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_LeaveApprovalChain(t *testing.T) {
	s := newTestServer(t)
	start := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	rec, env := s.do(http.MethodPost, "/api/v1/leave", s.tokenFor(s.staff), map[string]string{
		"leave_type": "Annual",
		"start_date": start,
		"end_date":   start,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, string(leave.StatusPendingManager), created.Status)

	path := "/api/v1/leave/" + itoa(created.ID)

	rec, _ = s.do(http.MethodPost, path+"/approve", s.tokenFor(s.hr), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "hr cannot decide before the manager")

	rec, env = s.do(http.MethodPost, path+"/approve", s.tokenFor(s.manager), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var decided leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &decided))
	assert.Equal(t, string(leave.StatusPendingHR), decided.Status)

	rec, _ = s.do(http.MethodPost, path+"/approve", s.tokenFor(s.manager), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "manager stage is over")

	rec, env = s.do(http.MethodPost, path+"/approve", s.tokenFor(s.hr), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &decided))
	assert.Equal(t, string(leave.StatusHRApproved), decided.Status)

	rec, _ = s.do(http.MethodPost, path+"/reject", s.tokenFor(s.hr), nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "decided requests are final")

	rec, _ = s.do(http.MethodPost, path+"/approve", s.tokenFor(s.staff), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/leave", s.tokenFor(s.staff), map[string]string{"leave_type": "Annual"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "start_date")

	rec, _ = s.do(http.MethodGet, "/api/v1/leave/abc", s.tokenFor(s.staff), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/leave/999", s.tokenFor(s.staff), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_TeamCalendar(t *testing.T) {
	s := newTestServer(t)
	today := time.Now().Format("2006-01-02")

	rec, env := s.do(http.MethodGet, "/api/v1/team/calendar?start="+today+"&end="+today, s.tokenFor(s.manager), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEqual(t, "null", string(env.Data))

	rec, _ = s.do(http.MethodGet, "/api/v1/team/calendar?start="+today+"&end="+today+"&employee_id="+itoa(s.hr.ID), s.tokenFor(s.manager), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/team/calendar?start=yesterday&end="+today, s.tokenFor(s.manager), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_ClockInTwice(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(s.staff)

	rec, _ := s.do(http.MethodPost, "/api/v1/attendance/clock-in", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = s.do(http.MethodPost, "/api/v1/attendance/clock-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
