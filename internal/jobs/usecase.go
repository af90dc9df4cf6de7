package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/models"
)

type UseCase interface {
	SubmitUploadProbe(ctx context.Context, video *models.Video) (*models.Job, error)
	SubmitTrim(ctx context.Context, videoID uuid.UUID, input *models.TrimInput) (*models.Job, error)
	SubmitOverlay(ctx context.Context, videoID uuid.UUID, input *models.OverlaysInput) (*models.Job, error)
	SubmitTranscode(ctx context.Context, videoID uuid.UUID, input *models.TranscodeInput) (*models.Job, error)

	GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.JobStatusResponse, error)
	ListJobsByVideo(ctx context.Context, videoID uuid.UUID) ([]*models.JobStatusResponse, error)
}
