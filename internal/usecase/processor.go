package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	repo "devb-web/internal/adapter/repository"
	"devb-web/internal/common"
	"devb-web/internal/domain"
	"devb-web/internal/model"
	"devb-web/internal/resume"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type ResumesRepo interface {
	Save(ctx context.Context, r *domain.ResumeRecord) error
}

// ErrProfileUnavailable is returned when no profile could be fetched for the
// requested username.
var ErrProfileUnavailable = common.NewAppError("PROFILE_UNAVAILABLE", "profile data unavailable", common.ErrNotFound)

// ResumeService turns a devb.io username into a one-page PDF resume.
type ResumeService struct {
	source   repo.ProfileSource
	renderer Renderer
	repo     ResumesRepo
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
}

func NewResumeService(src repo.ProfileSource, r Renderer, rr ResumesRepo, attempts int, logger *slog.Logger) *ResumeService {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResumeService{
		source:   src,
		renderer: r,
		repo:     rr,
		attempts: attempts,
		backoff:  time.Second,
		logger:   logger,
	}
}

// WithBackoff sets the base delay between render attempts.
func (s *ResumeService) WithBackoff(d time.Duration) *ResumeService {
	s.backoff = d
	return s
}

// Build fetches profile, projects and LinkedIn data and assembles the resume
// model. It fails only when the profile itself is missing.
func (s *ResumeService) Build(ctx context.Context, username string) (*model.Resume, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, common.NewAppError("INVALID_INPUT", "username is required", common.ErrInvalidInput)
	}

	agg := repo.AggregateForUser(ctx, s.source, username, repo.AggregateOptions{LinkedIn: true})
	if agg.Profile == nil {
		return nil, ErrProfileUnavailable
	}

	r := resume.Build(username, agg.Profile, agg.Projects, agg.LinkedIn)
	if err := model.Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Generate returns the PDF bytes for username and records the outcome.
func (s *ResumeService) Generate(ctx context.Context, username string) ([]byte, error) {
	r, err := s.Build(ctx, username)
	if err != nil {
		s.logger.Warn("resume: build failed", "username", username, "error", err)
		return nil, err
	}

	html, err := resume.RenderHTML(r)
	if err != nil {
		return nil, common.WrapError(err, "render resume html")
	}

	pdfBytes, err := s.renderPDF(ctx, html)
	s.record(ctx, r.Username, pdfBytes, err)
	if err != nil {
		return nil, err
	}
	return pdfBytes, nil
}

func (s *ResumeService) renderPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfBytes []byte
	var renderErr error
	for i := 0; i < s.attempts; i++ {
		pdfBytes, renderErr = s.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if len(pdfBytes) > 0 && strings.HasPrefix(string(pdfBytes), "%PDF") {
				return pdfBytes, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
		}
		s.logger.Warn("resume: render attempt failed", "attempt", i+1, "error", renderErr)
		if i < s.attempts-1 {
			backoff := time.Duration(1<<i) * s.backoff
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	s.logger.Error("resume: rendering failed", "attempts", s.attempts, "error", renderErr)
	return nil, renderErr
}

// record stores a bookkeeping row. Failures are logged and never surface.
func (s *ResumeService) record(ctx context.Context, username string, pdfBytes []byte, renderErr error) {
	if s.repo == nil {
		return
	}
	now := time.Now()
	rec := &domain.ResumeRecord{
		ID:        uuid.New(),
		Username:  username,
		Status:    "completed",
		FileName:  resume.FileName(username),
		FileSize:  len(pdfBytes),
		Metadata:  map[string]interface{}{"attempts": s.attempts},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if renderErr != nil {
		rec.Status = "failed"
		rec.Metadata["pdf_render_error"] = renderErr.Error()
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		s.logger.Warn("resume: saving record failed", "username", username, "error", err)
	}
}
