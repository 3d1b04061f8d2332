package postgresql_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/migrations"
	"github.com/stretchr/testify/require"
)

var tables = []string{
	"revoked_tokens",
	"meeting_invitations",
	"meetings",
	"performance_reviews",
	"project_tasks",
	"project_members",
	"projects",
	"attendances",
	"leave_requests",
	"employee_documents",
	"employees",
	"departments",
	"users",
}

// testDB connects to TEST_DATABASE_URL, migrates it and empties every table.
// Tests are skipped when the variable is unset.
func testDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	require.NoError(t, database.Migrate(ctx, dsn, migrations.FS, "up"))

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Exec(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return db
}
