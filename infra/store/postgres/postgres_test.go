package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taskforge/allocd/core/model"
	"github.com/taskforge/allocd/infra/logger"
)

// startPostgres launches a disposable PostgreSQL container and returns its DSN
// along with a cleanup function.
func startPostgres(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "allocd",
			"POSTGRES_PASSWORD": "allocd",
			"POSTGRES_DB":       "allocd",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(30 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	cleanup := func() { _ = cont.Terminate(context.Background()) }

	host, err := cont.Host(ctx)
	require.NoError(t, err)
	port, err := cont.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://allocd:allocd@%s:%s/allocd?sslmode=disable", host, port.Port())
	return dsn, cleanup
}

func setupRepository(ctx context.Context, t *testing.T, dsn string) *Repository {
	t.Helper()
	mig, err := NewMigrator(Config{DSN: dsn, MigrationsDir: "migrations"}, logger.NopLogger{})
	require.NoError(t, err)
	require.NoError(t, mig.Ensure(ctx))

	pool, err := Connect(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return New(pool)
}

func seedProject(ctx context.Context, t *testing.T, repo *Repository) {
	t.Helper()
	const members = `INSERT INTO team_members (project_id, name, role, skills, email) VALUES
		(1, 'Alice', 'Backend Developer', 'python django postgresql', 'alice@example.com'),
		(1, 'Bob', 'Frontend Developer', 'react typescript', NULL),
		(2, 'Carol', 'DevOps', 'docker k8s', NULL)`
	_, err := repo.pool.Exec(ctx, members)
	require.NoError(t, err)

	const reqs = `INSERT INTO requirements (project_id, title, summary, description, confirmed) VALUES
		(1, 'Login API', 'JWT based login endpoint', NULL, TRUE),
		(1, 'Dashboard', 'React admin dashboard', NULL, TRUE),
		(1, 'Draft idea', 'not confirmed yet', NULL, FALSE),
		(2, 'Pipeline', 'CI pipeline', NULL, TRUE)`
	_, err = repo.pool.Exec(ctx, reqs)
	require.NoError(t, err)
}

func TestRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	dsn, cleanup := startPostgres(ctx, t)
	defer cleanup()

	repo := setupRepository(ctx, t, dsn)
	seedProject(ctx, t, repo)

	t.Run("ListMembers", func(t *testing.T) {
		members, err := repo.ListMembers(ctx, 1)
		require.NoError(t, err)
		require.Len(t, members, 2)
		require.Equal(t, "Alice", members[0].Name)
		require.Equal(t, "", members[1].Email)
	})

	t.Run("ListConfirmed", func(t *testing.T) {
		reqs, err := repo.ListConfirmed(ctx, 1)
		require.NoError(t, err)
		require.Len(t, reqs, 2)
		require.Equal(t, "Login API", reqs[0].Title)
		require.True(t, reqs[0].ID < reqs[1].ID)
	})

	t.Run("AppendAndReplace", func(t *testing.T) {
		members, err := repo.ListMembers(ctx, 1)
		require.NoError(t, err)
		reqs, err := repo.ListConfirmed(ctx, 1)
		require.NoError(t, err)

		manual := []model.Assignment{
			{RequirementID: reqs[0].ID, MemberID: members[0].ID, AutoAssigned: false},
		}
		saved, err := repo.Append(ctx, 1, manual)
		require.NoError(t, err)
		require.Len(t, saved, 1)
		require.NotZero(t, saved[0].ID)
		require.False(t, saved[0].CreatedAt.IsZero())

		auto := []model.Assignment{
			{RequirementID: reqs[0].ID, MemberID: members[0].ID, AutoAssigned: true},
			{RequirementID: reqs[1].ID, MemberID: members[1].ID, AutoAssigned: true},
		}
		first, err := repo.ReplaceAuto(ctx, 1, auto)
		require.NoError(t, err)
		require.Len(t, first, 2)

		// A second replace removes the prior auto rows but keeps the manual one.
		second, err := repo.ReplaceAuto(ctx, 1, auto)
		require.NoError(t, err)
		require.Len(t, second, 2)

		all, err := repo.ListAssignments(ctx, 1)
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.False(t, all[0].AutoAssigned)
		for _, a := range all[1:] {
			require.True(t, a.AutoAssigned)
		}
	})

	t.Run("ReplaceScopedToProject", func(t *testing.T) {
		members, err := repo.ListMembers(ctx, 2)
		require.NoError(t, err)
		reqs, err := repo.ListConfirmed(ctx, 2)
		require.NoError(t, err)

		_, err = repo.ReplaceAuto(ctx, 2, []model.Assignment{
			{RequirementID: reqs[0].ID, MemberID: members[0].ID, AutoAssigned: true},
		})
		require.NoError(t, err)

		other, err := repo.ListAssignments(ctx, 1)
		require.NoError(t, err)
		require.Len(t, other, 3)
	})

	t.Run("RollbackOnBadRow", func(t *testing.T) {
		before, err := repo.ListAssignments(ctx, 2)
		require.NoError(t, err)

		// Second row violates the requirement foreign key, so the whole
		// batch must roll back including the delete step.
		members, err := repo.ListMembers(ctx, 2)
		require.NoError(t, err)
		reqs, err := repo.ListConfirmed(ctx, 2)
		require.NoError(t, err)
		_, err = repo.ReplaceAuto(ctx, 2, []model.Assignment{
			{RequirementID: reqs[0].ID, MemberID: members[0].ID, AutoAssigned: true},
			{RequirementID: 999999, MemberID: members[0].ID, AutoAssigned: true},
		})
		require.Error(t, err)

		after, err := repo.ListAssignments(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})
}
