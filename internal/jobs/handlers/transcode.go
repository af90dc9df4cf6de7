package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/storage"
)

// Transcode renders one variant per requested quality tier, highest first.
// The job's output reference points at the highest tier.
func (d *Deps) Transcode(videoID uuid.UUID, input *models.TranscodeInput) orchestrator.HandlerFunc {
	return func(ctx context.Context, exec *orchestrator.Execution) error {
		sourcePath, _, err := d.resolveSource(ctx, exec, videoID, input.SourceVariantID)
		if err != nil {
			return err
		}
		qualities := dedupeQualities(input.Qualities)
		if len(qualities) == 0 {
			return fmt.Errorf("no valid quality tiers requested")
		}
		if err = exec.ReportProgress(ctx, 10); err != nil {
			return err
		}

		var first uuid.UUID
		for i, q := range qualities {
			height := models.QualityHeights[q]
			tempPath, finalPath := d.Storage.TempAndFinal(storage.VariantsDir, ".mp4")
			if err = d.FFmpeg.Rescale(ctx, sourcePath, height, tempPath); err != nil {
				d.Storage.Delete(tempPath)
				return err
			}
			cfg, _ := json.Marshal(map[string]interface{}{"quality": q, "height": height})
			variant, err := d.produceVariant(ctx, exec, tempPath, finalPath, &models.VideoVariant{
				VideoID:         videoID,
				Kind:            models.VariantKindTranscode,
				Quality:         q,
				SourceVariantID: nullUUID(input.SourceVariantID),
				Config:          cfg,
			})
			if err != nil {
				return err
			}
			if i == 0 {
				first = variant.VariantID
			}
			// spread 10..90 evenly across the requested tiers
			progress := 10 + (i+1)*80/len(qualities)
			if err = exec.ReportProgress(ctx, progress); err != nil {
				return err
			}
		}
		return exec.SetOutput(ctx, first)
	}
}

// dedupeQualities drops repeats and orders tiers from highest to lowest.
func dedupeQualities(in []models.VariantQuality) []models.VariantQuality {
	seen := make(map[models.VariantQuality]bool, len(in))
	out := make([]models.VariantQuality, 0, len(in))
	for _, q := range in {
		if _, known := models.QualityHeights[q]; !known || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		return models.QualityHeights[out[i]] > models.QualityHeights[out[j]]
	})
	return out
}
