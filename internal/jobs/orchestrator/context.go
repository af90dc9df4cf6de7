package orchestrator

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/videos"
	"github.com/clipstack/video-editor-backend/pkg/logger"
)

// Execution is the per-job view handed to a handler. It wraps the session
// pinned to this job and keeps a local copy of the status fields so every
// transition can be mirrored into the cache without rereading Postgres.
type Execution struct {
	job     *models.Job
	session jobs.Session
	cache   jobs.RedisRepository
	logger  logger.Logger
}

// NewExecution wraps a started job and its session. The worker builds one per
// task; tests build them directly around fakes.
func NewExecution(job *models.Job, session jobs.Session, cache jobs.RedisRepository, log logger.Logger) *Execution {
	return &Execution{
		job:     job,
		session: session,
		cache:   cache,
		logger:  log,
	}
}

func (e *Execution) JobID() uuid.UUID {
	return e.job.JobID
}

func (e *Execution) Job() *models.Job {
	return e.job
}

func (e *Execution) Videos() videos.Repository {
	return e.session.Videos()
}

// ReportProgress persists a progress checkpoint. Progress never moves
// backwards; the repository rejects regressions.
func (e *Execution) ReportProgress(ctx context.Context, progress int) error {
	if err := e.session.Jobs().SetProgress(ctx, e.job.JobID, progress); err != nil {
		return err
	}
	e.job.Progress = progress
	e.mirror(ctx)
	return nil
}

// SetOutput records the variant produced by this job. Handlers that produce
// an artifact call this before returning nil.
func (e *Execution) SetOutput(ctx context.Context, variantID uuid.UUID) error {
	if err := e.session.Jobs().SetOutputVariant(ctx, e.job.JobID, variantID); err != nil {
		return err
	}
	e.job.OutputVariantID = uuid.NullUUID{UUID: variantID, Valid: true}
	e.mirror(ctx)
	return nil
}

// mirror pushes the current status snapshot into the cache. Cache failures
// are logged and swallowed; Postgres stays the source of truth.
func (e *Execution) mirror(ctx context.Context) {
	if e.cache == nil {
		return
	}
	if err := e.cache.CacheJobStatus(ctx, e.job.Response()); err != nil {
		e.logger.Warnf("failed to mirror job %s status to cache: %v", e.job.JobID, err)
	}
}
