package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the schema steps in the order they run.
var Migrations = []Migration{
	{Name: "create_resume_records", Up: createResumeRecords},
	{Name: "index_resume_records_username", Up: indexResumeRecordsUsername},
}

// RunMigrations executes all migrations on startup. A nil pool is a no-op.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if pool == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting database migrations")

	for _, m := range Migrations {
		if err := m.Up(ctx, pool); err != nil {
			logger.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		logger.Info("Migration completed", "name", m.Name)
	}

	logger.Info("All migrations completed successfully")
	return nil
}

func createResumeRecords(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resume_records (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			status TEXT NOT NULL,
			file_name TEXT NOT NULL DEFAULT '',
			file_size INTEGER NOT NULL DEFAULT 0,
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func indexResumeRecordsUsername(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_resume_records_username ON resume_records (username);`)
	return err
}
