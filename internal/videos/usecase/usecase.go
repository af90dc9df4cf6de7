package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/storage"
	"github.com/clipstack/video-editor-backend/internal/videos"
	"github.com/clipstack/video-editor-backend/pkg/logger"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".flv":  true,
	".wmv":  true,
	".m4v":  true,
}

type videosUC struct {
	cfg        *config.Config
	videosRepo videos.Repository
	jobsUC     jobs.UseCase
	store      *storage.Storage
	logger     logger.Logger
}

func NewVideosUseCase(
	cfg *config.Config,
	videosRepo videos.Repository,
	jobsUC jobs.UseCase,
	store *storage.Storage,
	log logger.Logger,
) videos.UseCase {
	return &videosUC{
		cfg:        cfg,
		videosRepo: videosRepo,
		jobsUC:     jobsUC,
		store:      store,
		logger:     log,
	}
}

// UploadVideo persists the file and the video row, then queues a probe job to
// backfill duration and verified size. The caller gets the video immediately;
// duration stays null until the probe lands.
func (u *videosUC) UploadVideo(ctx context.Context, header *multipart.FileHeader) (*models.Video, *models.Job, error) {
	if header.Filename == "" {
		return nil, nil, fmt.Errorf("no filename provided")
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !videoExtensions[ext] {
		return nil, nil, fmt.Errorf("unsupported video format %q", ext)
	}
	if maxMB := u.cfg.Media.MaxUploadSizeMB; maxMB > 0 && header.Size > int64(maxMB)<<20 {
		return nil, nil, fmt.Errorf("file exceeds the %d MB upload limit", maxMB)
	}

	src, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	stored, err := u.store.SaveUpload(src, header.Filename)
	if err != nil {
		return nil, nil, err
	}

	video, err := u.videosRepo.CreateVideo(ctx, &models.Video{
		OriginalFilename: header.Filename,
		StoredPath:       stored.Path,
		SizeBytes:        stored.SizeBytes,
		MimeType:         header.Header.Get("Content-Type"),
	})
	if err != nil {
		u.store.Delete(stored.Path)
		return nil, nil, err
	}

	job, err := u.jobsUC.SubmitUploadProbe(ctx, video)
	if err != nil {
		u.logger.Errorf("probe submission failed for video %s: %v", video.VideoID, err)
		return video, job, nil
	}
	return video, job, nil
}

func (u *videosUC) GetVideo(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	return u.videosRepo.GetVideoByID(ctx, videoID)
}

func (u *videosUC) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	return u.videosRepo.GetVideos(ctx, pagination)
}

func (u *videosUC) GetVariant(ctx context.Context, variantID uuid.UUID) (*models.VideoVariant, error) {
	return u.videosRepo.GetVariantByID(ctx, variantID)
}

func (u *videosUC) ListVariants(ctx context.Context, videoID uuid.UUID) (*models.VariantList, error) {
	if _, err := u.videosRepo.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}
	return u.videosRepo.GetVariantsByVideo(ctx, videoID)
}
