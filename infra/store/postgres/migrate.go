package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/taskforge/allocd/infra/logger"
)

// Migrator applies schema migrations with goose.
type Migrator struct {
	dsn string
	dir string
	log logger.Logger
}

// NewMigrator returns a migration runner for the configured database.
func NewMigrator(cfg Config, log logger.Logger) (*Migrator, error) {
	cfg.SetDefaults()
	if cfg.DSN == "" {
		return nil, errors.New("empty database dsn")
	}
	if _, err := os.Stat(cfg.MigrationsDir); err != nil {
		return nil, fmt.Errorf("locate migrations dir: %w", err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Migrator{dsn: cfg.DSN, dir: cfg.MigrationsDir, log: log}, nil
}

// Ensure applies pending migrations.
func (m *Migrator) Ensure(ctx context.Context) error {
	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	m.log.Infof("applying migrations from %s", m.dir)
	if err := goose.UpContext(runCtx, db, m.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	m.log.Infof("migrations applied")
	return nil
}
