package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/videos"
)

type Repository interface {
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	GetJobsByVideo(ctx context.Context, videoID uuid.UUID) ([]*models.Job, error)

	// Status transitions are forward-only. Each call fails when the stored
	// status does not permit the move.
	MarkStarted(ctx context.Context, jobID uuid.UUID) error
	SetProgress(ctx context.Context, jobID uuid.UUID, progress int) error
	SetOutputVariant(ctx context.Context, jobID uuid.UUID, variantID uuid.UUID) error
	MarkSuccess(ctx context.Context, jobID uuid.UUID) error
	MarkFailure(ctx context.Context, jobID uuid.UUID, message string) error
}

// Session is a unit of work pinned to a single database connection for the
// duration of one job execution.
type Session interface {
	Jobs() Repository
	Videos() videos.Repository
	Close() error
}

type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
}
