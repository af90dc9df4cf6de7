package jobs

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/models"
)

// RedisRepository caches the externally visible status of a job so polling
// clients do not hit Postgres on every request. A nil result with a nil error
// means the status is not cached.
type RedisRepository interface {
	CacheJobStatus(ctx context.Context, status *models.JobStatusResponse) error
	GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.JobStatusResponse, error)
}
