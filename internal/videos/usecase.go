package videos

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

type UseCase interface {
	UploadVideo(ctx context.Context, header *multipart.FileHeader) (*models.Video, *models.Job, error)
	GetVideo(ctx context.Context, videoID uuid.UUID) (*models.Video, error)
	ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error)

	GetVariant(ctx context.Context, variantID uuid.UUID) (*models.VideoVariant, error)
	ListVariants(ctx context.Context, videoID uuid.UUID) (*models.VariantList, error)
}
