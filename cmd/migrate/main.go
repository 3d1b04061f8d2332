package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/hrms-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	"github.com/cmlabs-hris/hrms-backend-go/migrations"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hrms-migrate",
	Short: "Database maintenance for the HRMS backend",
	Long:  `Runs the embedded goose migrations and bootstraps the first HR account.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func gooseCommand(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), cfg.DatabaseURL(), migrations.FS, use, args...); err != nil {
				return err
			}
			slog.Info("migration command finished", "command", use)
			return nil
		},
	}
}

var seed struct {
	username  string
	password  string
	firstName string
	lastName  string
	email     string
}

var seedHRCmd = &cobra.Command{
	Use:   "seed-hr",
	Short: "Create the first HR account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return err
		}
		svc := employeeService.NewEmployeeService(
			postgresql.NewTxManager(db),
			postgresql.NewUserRepository(db),
			postgresql.NewEmployeeRepository(db),
			postgresql.NewDepartmentRepository(db),
			file.NewFileService(fileStorage),
		)

		created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			FirstName:     seed.firstName,
			LastName:      seed.lastName,
			Email:         seed.email,
			Position:      "HR Administrator",
			DateOfJoining: time.Now().Format("2006-01-02"),
			Username:      seed.username,
			Password:      seed.password,
			Role:          string(user.RoleHR),
		})
		if err != nil {
			return err
		}
		slog.Info("hr account created", "employee_id", created.ID, "username", created.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(
		gooseCommand("up", "Apply all pending migrations"),
		gooseCommand("down", "Roll back the latest migration"),
		gooseCommand("status", "Show migration status"),
		seedHRCmd,
	)

	seedHRCmd.Flags().StringVar(&seed.username, "username", "admin", "login username")
	seedHRCmd.Flags().StringVar(&seed.password, "password", "", "login password (min 8 characters)")
	seedHRCmd.Flags().StringVar(&seed.firstName, "first-name", "HR", "first name")
	seedHRCmd.Flags().StringVar(&seed.lastName, "last-name", "Admin", "last name")
	seedHRCmd.Flags().StringVar(&seed.email, "email", "hr@example.com", "work email")
	_ = seedHRCmd.MarkFlagRequired("password")
}
