package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/ffmpeg"
	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/storage"
	"github.com/clipstack/video-editor-backend/pkg/logger"
)

// Deps bundles what every media job needs: the ffmpeg runner and the media
// tree. Handler constructors close over the submission payload so the
// orchestrator stays payload-agnostic.
type Deps struct {
	FFmpeg  *ffmpeg.FFmpeg
	Storage *storage.Storage
	Logger  logger.Logger
}

func NewDeps(ff *ffmpeg.FFmpeg, store *storage.Storage, log logger.Logger) *Deps {
	return &Deps{
		FFmpeg:  ff,
		Storage: store,
		Logger:  log,
	}
}

// resolveSource picks the job input: an existing variant when the submission
// names one, the original upload otherwise. It returns the file path and the
// known duration in seconds (zero when the source was never probed).
func (d *Deps) resolveSource(ctx context.Context, exec *orchestrator.Execution, videoID uuid.UUID, sourceVariantID *uuid.UUID) (string, float64, error) {
	video, err := exec.Videos().GetVideoByID(ctx, videoID)
	if err != nil {
		return "", 0, err
	}
	if sourceVariantID == nil {
		duration := 0.0
		if video.DurationSec != nil {
			duration = *video.DurationSec
		}
		return video.StoredPath, duration, nil
	}
	variant, err := exec.Videos().GetVariantByID(ctx, *sourceVariantID)
	if err != nil {
		return "", 0, err
	}
	if variant.VideoID != videoID {
		return "", 0, fmt.Errorf("variant %s does not belong to video %s", variant.VariantID, videoID)
	}
	return variant.StoredPath, variant.DurationSec, nil
}

// produceVariant probes a finished temp output, promotes it into the media
// tree and records the variant row. The temp file is removed on any error.
func (d *Deps) produceVariant(ctx context.Context, exec *orchestrator.Execution, tempPath, finalPath string, variant *models.VideoVariant) (*models.VideoVariant, error) {
	probed, err := d.FFmpeg.Probe(ctx, tempPath)
	if err != nil {
		d.Storage.Delete(tempPath)
		return nil, err
	}
	if err = d.Storage.Promote(tempPath, finalPath); err != nil {
		d.Storage.Delete(tempPath)
		return nil, err
	}
	variant.StoredPath = finalPath
	variant.SizeBytes = probed.SizeBytes
	variant.DurationSec = probed.DurationSec
	created, err := exec.Videos().CreateVariant(ctx, variant)
	if err != nil {
		d.Storage.Delete(finalPath)
		return nil, err
	}
	return created, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
