// Package postgres implements the engine's store contracts on PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/allocd/core/model"
	"github.com/taskforge/allocd/core/store"
)

// Config holds the database connection settings.
type Config struct {
	DSN           string `json:"dsn"`
	MigrationsDir string `json:"migrations_dir"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.MigrationsDir == "" {
		c.MigrationsDir = "infra/store/postgres/migrations"
	}
}

// Repository implements the store contracts on a pgx connection pool.
type Repository struct {
	pool *pgxpool.Pool
}

var (
	_ store.RequirementStore = (*Repository)(nil)
	_ store.MemberStore      = (*Repository)(nil)
	_ store.AssignmentStore  = (*Repository)(nil)
)

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Connect opens a pool for the configured DSN.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// ListMembers returns the project roster ordered by identifier.
func (r *Repository) ListMembers(ctx context.Context, projectID int64) ([]model.TeamMember, error) {
	const query = `SELECT id, project_id, name, role, skills, COALESCE(email, '')
		FROM team_members WHERE project_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var members []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Name, &m.Role, &m.Skills, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListConfirmed returns the project's confirmed requirements ordered by
// identifier.
func (r *Repository) ListConfirmed(ctx context.Context, projectID int64) ([]model.Requirement, error) {
	const query = `SELECT id, project_id, title, summary, COALESCE(description, ''), confirmed
		FROM requirements WHERE project_id = $1 AND confirmed ORDER BY id`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reqs []model.Requirement
	for rows.Next() {
		var req model.Requirement
		if err := rows.Scan(&req.ID, &req.ProjectID, &req.Title, &req.Summary, &req.Description, &req.Confirmed); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// ReplaceAuto deletes the project's auto-generated assignments and inserts
// the batch within one transaction. Either both steps commit or neither is
// visible.
func (r *Repository) ReplaceAuto(ctx context.Context, projectID int64, batch []model.Assignment) ([]model.Assignment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `DELETE FROM task_assignments a USING team_members m
		WHERE a.member_id = m.id AND m.project_id = $1 AND a.auto_assigned`
	if _, err := tx.Exec(ctx, del, projectID); err != nil {
		return nil, fmt.Errorf("delete prior auto assignments: %w", err)
	}
	out, err := insertBatch(ctx, tx, batch)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// Append inserts the batch within one transaction, leaving prior assignments
// untouched.
func (r *Repository) Append(ctx context.Context, _ int64, batch []model.Assignment) ([]model.Assignment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out, err := insertBatch(ctx, tx, batch)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

func insertBatch(ctx context.Context, tx pgx.Tx, batch []model.Assignment) ([]model.Assignment, error) {
	const ins = `INSERT INTO task_assignments (requirement_id, member_id, auto_assigned, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	out := make([]model.Assignment, 0, len(batch))
	for _, a := range batch {
		row := tx.QueryRow(ctx, ins, a.RequirementID, a.MemberID, a.AutoAssigned, a.StartDate, a.EndDate)
		if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert assignment for requirement %d: %w", a.RequirementID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// ListAssignments returns the assignments of the project's members ordered by
// identifier.
func (r *Repository) ListAssignments(ctx context.Context, projectID int64) ([]model.Assignment, error) {
	const query = `SELECT a.id, a.requirement_id, a.member_id, a.auto_assigned, a.start_date, a.end_date, a.created_at
		FROM task_assignments a JOIN team_members m ON a.member_id = m.id
		WHERE m.project_id = $1 ORDER BY a.id`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.RequirementID, &a.MemberID, &a.AutoAssigned, &a.StartDate, &a.EndDate, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
