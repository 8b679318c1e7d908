package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"

	"devb-web/internal/domain"
)

// ResumesRepo records generated resumes in Postgres. A nil pool turns Save into
// a no-op so the site runs without a database.
type ResumesRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewResumesRepo(pool *pgxpool.Pool, logger *slog.Logger) *ResumesRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumesRepo{pool: pool, logger: logger}
}

func (r *ResumesRepo) Save(ctx context.Context, rec *domain.ResumeRecord) error {
	if r == nil || r.pool == nil {
		return nil
	}

	metaB, err := json.Marshal(rec.Metadata)
	if err != nil {
		r.logger.Warn("resumes_repo: unable to encode metadata (non-fatal)", "id", rec.ID, "error", err)
		metaB = []byte("{}")
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resume_records (id, username, status, file_name, file_size, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, file_name = EXCLUDED.file_name, file_size = EXCLUDED.file_size, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.Username, rec.Status, rec.FileName, rec.FileSize, metaB, rec.CreatedAt, rec.UpdatedAt)
	return err
}
