package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/videos"
	"github.com/clipstack/video-editor-backend/pkg/db/postgres"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

type videosRepo struct {
	db postgres.Queryer
}

func NewVideosRepo(db postgres.Queryer) videos.Repository {
	return &videosRepo{
		db: db,
	}
}

func (r *videosRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	created := &models.Video{}
	if err := r.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		video.OriginalFilename,
		video.StoredPath,
		video.SizeBytes,
		video.DurationSec,
		video.MimeType,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return created, nil
}

func (r *videosRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	video := &models.Video{}
	if err := r.db.GetContext(ctx, video, getVideoByIDQuery, videoID); err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", videoID, err)
	}
	return video, nil
}

func (r *videosRepo) GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalVideosQuery); err != nil {
		return nil, fmt.Errorf("failed to get total videos count: %w", err)
	}
	if totalCount == 0 {
		return &models.VideoList{
			Videos:     make([]*models.Video, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}
	rows, err := r.db.QueryxContext(ctx, getVideosQuery, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}
	defer rows.Close()
	videoList := make([]*models.Video, 0, pq.GetSize())
	for rows.Next() {
		var video models.Video
		if err = rows.StructScan(&video); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videoList = append(videoList, &video)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan videos: %w", err)
	}
	return &models.VideoList{
		Videos:     videoList,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (r *videosRepo) UpdateVideoProbe(ctx context.Context, videoID uuid.UUID, durationSec float64, sizeBytes int64) error {
	res, err := r.db.ExecContext(ctx, updateVideoProbeQuery, durationSec, sizeBytes, videoID)
	if err != nil {
		return fmt.Errorf("failed to update video probe data: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check probe update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("video %s not found for probe update", videoID)
	}
	return nil
}

func (r *videosRepo) CreateVariant(ctx context.Context, variant *models.VideoVariant) (*models.VideoVariant, error) {
	created := &models.VideoVariant{}
	if err := r.db.QueryRowxContext(
		ctx,
		createVariantQuery,
		variant.VideoID,
		variant.Kind,
		variant.Quality,
		variant.SourceVariantID,
		variant.StoredPath,
		variant.SizeBytes,
		variant.DurationSec,
		variant.Config,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return created, nil
}

func (r *videosRepo) GetVariantByID(ctx context.Context, variantID uuid.UUID) (*models.VideoVariant, error) {
	variant := &models.VideoVariant{}
	if err := r.db.GetContext(ctx, variant, getVariantByIDQuery, variantID); err != nil {
		return nil, fmt.Errorf("failed to get variant %s: %w", variantID, err)
	}
	return variant, nil
}

func (r *videosRepo) GetVariantsByVideo(ctx context.Context, videoID uuid.UUID) (*models.VariantList, error) {
	var variants []*models.VideoVariant
	if err := r.db.SelectContext(ctx, &variants, getVariantsByVideoQuery, videoID); err != nil {
		return nil, fmt.Errorf("failed to get variants for video %s: %w", videoID, err)
	}
	responses := make([]*models.VariantResponse, 0, len(variants))
	for _, v := range variants {
		responses = append(responses, v.Response())
	}
	return &models.VariantList{
		Variants:   responses,
		TotalCount: len(responses),
		Page:       1,
		PageSize:   len(responses),
		HasMore:    false,
	}, nil
}

func (r *videosRepo) CreateOverlay(ctx context.Context, overlay *models.Overlay) (*models.Overlay, error) {
	created := &models.Overlay{}
	if err := r.db.QueryRowxContext(
		ctx,
		createOverlayQuery,
		overlay.VideoID,
		overlay.VariantID,
		overlay.Type,
		overlay.Payload,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}
	return created, nil
}
