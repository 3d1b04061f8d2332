package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	departmentService "github.com/cmlabs-hris/hrms-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/hrms-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	meetingService "github.com/cmlabs-hris/hrms-backend-go/internal/service/meeting"
	projectService "github.com/cmlabs-hris/hrms-backend-go/internal/service/project"
	"github.com/cmlabs-hris/hrms-backend-go/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, dsn, migrations.FS, "up"); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	tx := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	revokedTokenRepo := postgresql.NewRevokedTokenRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	meetingRepo := postgresql.NewMeetingRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.CookieSecure)
	authService := serviceAuth.NewAuthService(userRepo, revokedTokenRepo, JWTService)
	deptService := departmentService.NewDepartmentService(departmentRepo, employeeRepo)
	empService := employeeService.NewEmployeeService(tx, userRepo, employeeRepo, departmentRepo, fileService)
	leaveService := leave.NewLeaveService(leaveRequestRepo, employeeRepo)
	attService := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, leaveRequestRepo)
	projService := projectService.NewProjectService(tx, projectRepo, taskRepo, reviewRepo, employeeRepo)
	meetService := meetingService.NewMeetingService(tx, meetingRepo, invitationRepo, employeeRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
			LogLevel:    cfg.SlogLevel(),
		},
		JWTService,
		revokedTokenRepo,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authService),
			Department: appHTTP.NewDepartmentHandler(deptService),
			Employee:   appHTTP.NewEmployeeHandler(empService),
			Leave:      appHTTP.NewLeaveHandler(leaveService),
			Attendance: appHTTP.NewAttendanceHandler(attService),
			Project:    appHTTP.NewProjectHandler(projService),
			Meeting:    appHTTP.NewMeetingHandler(meetService),
			File:       appHTTP.NewFileHandler(fileService),
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(revokedTokenRepo).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
