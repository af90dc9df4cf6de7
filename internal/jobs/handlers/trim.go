package handlers

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/storage"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

// Trim cuts [start, end) out of the source into a new variant. Bounds are
// clamped to the known duration first and rejected only if the clamped range
// collapses.
func (d *Deps) Trim(videoID uuid.UUID, input *models.TrimInput) orchestrator.HandlerFunc {
	return func(ctx context.Context, exec *orchestrator.Execution) error {
		sourcePath, duration, err := d.resolveSource(ctx, exec, videoID, input.SourceVariantID)
		if err != nil {
			return err
		}
		start, end, err := utils.ValidateTimeRange(input.Start, input.End, duration)
		if err != nil {
			return err
		}
		if err = exec.ReportProgress(ctx, 10); err != nil {
			return err
		}

		tempPath, finalPath := d.Storage.TempAndFinal(storage.VariantsDir, ".mp4")
		if err = exec.ReportProgress(ctx, 20); err != nil {
			return err
		}
		if err = d.FFmpeg.Trim(ctx, sourcePath, start, end, tempPath); err != nil {
			d.Storage.Delete(tempPath)
			return err
		}
		if err = exec.ReportProgress(ctx, 70); err != nil {
			d.Storage.Delete(tempPath)
			return err
		}

		cfg, _ := json.Marshal(map[string]float64{"start": start, "end": end})
		variant, err := d.produceVariant(ctx, exec, tempPath, finalPath, &models.VideoVariant{
			VideoID:         videoID,
			Kind:            models.VariantKindTrim,
			Quality:         models.QualitySource,
			SourceVariantID: nullUUID(input.SourceVariantID),
			Config:          cfg,
		})
		if err != nil {
			return err
		}
		if err = exec.ReportProgress(ctx, 80); err != nil {
			return err
		}
		return exec.SetOutput(ctx, variant.VariantID)
	}
}
