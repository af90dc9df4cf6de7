package videos

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

type Repository interface {
	CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error)
	GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error)
	GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error)
	UpdateVideoProbe(ctx context.Context, videoID uuid.UUID, durationSec float64, sizeBytes int64) error

	CreateVariant(ctx context.Context, variant *models.VideoVariant) (*models.VideoVariant, error)
	GetVariantByID(ctx context.Context, variantID uuid.UUID) (*models.VideoVariant, error)
	GetVariantsByVideo(ctx context.Context, videoID uuid.UUID) (*models.VariantList, error)

	CreateOverlay(ctx context.Context, overlay *models.Overlay) (*models.Overlay, error)
}
