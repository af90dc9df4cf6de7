package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
)

// Probe backfills duration and size on a freshly uploaded video. It produces
// no variant, so a successful probe job carries no output reference.
func (d *Deps) Probe(videoID uuid.UUID) orchestrator.HandlerFunc {
	return func(ctx context.Context, exec *orchestrator.Execution) error {
		video, err := exec.Videos().GetVideoByID(ctx, videoID)
		if err != nil {
			return err
		}
		if err = exec.ReportProgress(ctx, 20); err != nil {
			return err
		}
		probed, err := d.FFmpeg.Probe(ctx, video.StoredPath)
		if err != nil {
			return err
		}
		if err = exec.ReportProgress(ctx, 80); err != nil {
			return err
		}
		return exec.Videos().UpdateVideoProbe(ctx, videoID, probed.DurationSec, probed.SizeBytes)
	}
}
