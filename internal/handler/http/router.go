package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	FrontendURL string
	Env         string
	LogLevel    slog.Level
}

type Handlers struct {
	Auth       AuthHandler
	Department DepartmentHandler
	Employee   EmployeeHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Project    ProjectHandler
	Meeting    MeetingHandler
	File       FileHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, revokedTokens auth.RevokedTokenRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	hr := middleware.RequireRole(user.RoleHR)
	managerOrHR := middleware.RequireRole(user.RoleManager, user.RoleHR)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(revokedTokens))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Post("/change-password", h.Auth.ChangePassword)
			})

			r.Get("/me", h.Employee.GetMe)
			r.Get("/uploads/*", h.File.Download)

			r.Route("/departments", func(r chi.Router) {
				r.Use(hr)
				r.Get("/", h.Department.List)
				r.Post("/", h.Department.Create)
				r.Get("/{id}", h.Department.Get)
				r.Put("/{id}", h.Department.Update)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/by-role", h.Employee.ListByRole)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}/department", h.Employee.UnassignFromDepartment)
				r.Get("/{id}/calendar", h.Attendance.EmployeeCalendar)
			})

			r.Route("/team", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTeamManage))
				r.Get("/", h.Employee.GetTeam)
				r.Post("/members/{employeeID}", h.Employee.AssignToTeam)
				r.Delete("/members/{employeeID}", h.Employee.UnassignFromTeam)
				r.Get("/calendar", h.Attendance.TeamCalendar)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/mine", h.Leave.MyRequests)
				r.With(managerOrHR).Get("/on-leave-today", h.Leave.OnLeaveToday)
				r.With(middleware.RequirePermission(user.PermissionLeaveApproveManager)).Get("/manager-queue", h.Leave.ManagerQueue)
				r.With(middleware.RequirePermission(user.PermissionLeaveApproveHR)).Get("/hr-queue", h.Leave.HRQueue)
				r.Get("/{id}", h.Leave.Get)
				r.With(managerOrHR).Post("/{id}/approve", h.Leave.Approve)
				r.With(managerOrHR).Post("/{id}/reject", h.Leave.Reject)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/history", h.Attendance.MyHistory)
				r.Get("/calendar", h.Attendance.MyCalendar)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/mine", h.Project.MyProjects)
				r.Get("/reviews/mine", h.Project.MyReviews)
				r.Post("/tasks/{taskID}/complete", h.Project.CompleteTask)

				// Managing side
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionProjectManage))
					r.Get("/", h.Project.ListManaged)
					r.Post("/", h.Project.Create)
					r.Get("/{id}", h.Project.Details)
					r.Delete("/{id}", h.Project.Delete)
					r.Post("/{id}/tasks", h.Project.AddTask)
					r.Post("/{id}/members/{employeeID}", h.Project.AssignMember)
					r.Delete("/{id}/members/{employeeID}", h.Project.UnassignMember)
					r.Get("/{id}/review", h.Project.ReviewForm)
					r.Post("/{id}/review", h.Project.SubmitFinalReviews)
				})
			})

			r.Route("/meetings", func(r chi.Router) {
				r.Get("/invitations", h.Meeting.MyInvitations)
				r.Post("/invitations/{id}/respond", h.Meeting.Respond)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMeetingSchedule))
					r.Get("/", h.Meeting.ListMine)
					r.Post("/", h.Meeting.Create)
					r.Get("/invitable", h.Meeting.Invitable)
				})
			})
		})
	})
	return r
}
