package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/filtergraph"
	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/storage"
)

// Overlay composites text, image and video overlays plus an optional
// watermark onto the source in one ffmpeg pass.
func (d *Deps) Overlay(videoID uuid.UUID, input *models.OverlaysInput) orchestrator.HandlerFunc {
	return func(ctx context.Context, exec *orchestrator.Execution) error {
		sourcePath, _, err := d.resolveSource(ctx, exec, videoID, input.SourceVariantID)
		if err != nil {
			return err
		}
		if err = d.checkAssets(input); err != nil {
			return err
		}
		graph := filtergraph.Build(input.Overlays, input.Watermark, d.FFmpeg.GraphOptions())
		if graph.Empty() {
			return fmt.Errorf("no overlays to apply")
		}
		if err = exec.ReportProgress(ctx, 10); err != nil {
			return err
		}

		tempPath, finalPath := d.Storage.TempAndFinal(storage.VariantsDir, ".mp4")
		if err = exec.ReportProgress(ctx, 20); err != nil {
			return err
		}
		if err = d.FFmpeg.Composite(ctx, sourcePath, graph, tempPath); err != nil {
			d.Storage.Delete(tempPath)
			return err
		}
		if err = exec.ReportProgress(ctx, 70); err != nil {
			d.Storage.Delete(tempPath)
			return err
		}

		kind := models.VariantKindOverlay
		if len(input.Overlays) == 0 && input.Watermark != nil {
			kind = models.VariantKindWatermark
		}
		cfg, _ := json.Marshal(input)
		variant, err := d.produceVariant(ctx, exec, tempPath, finalPath, &models.VideoVariant{
			VideoID:         videoID,
			Kind:            kind,
			Quality:         models.QualitySource,
			SourceVariantID: nullUUID(input.SourceVariantID),
			Config:          cfg,
		})
		if err != nil {
			return err
		}
		if err = d.recordOverlays(ctx, exec, videoID, variant.VariantID, input); err != nil {
			return err
		}
		if err = exec.ReportProgress(ctx, 80); err != nil {
			return err
		}
		return exec.SetOutput(ctx, variant.VariantID)
	}
}

// checkAssets rejects overlay media that lives outside the allowed
// directories or does not exist, before any ffmpeg process is spawned.
func (d *Deps) checkAssets(input *models.OverlaysInput) error {
	for i := range input.Overlays {
		o := &input.Overlays[i]
		var assetPath string
		switch o.Type {
		case models.OverlayTypeImage:
			assetPath = o.ImagePath
		case models.OverlayTypeVideo:
			assetPath = o.VideoPath
		default:
			continue
		}
		if !d.Storage.ValidAssetPath(assetPath) {
			return fmt.Errorf("overlay asset path %q is not allowed", assetPath)
		}
		if !d.Storage.Exists(assetPath) {
			return fmt.Errorf("overlay asset %q not found", assetPath)
		}
	}
	if input.Watermark != nil {
		if !d.Storage.ValidAssetPath(input.Watermark.ImagePath) {
			return fmt.Errorf("watermark path %q is not allowed", input.Watermark.ImagePath)
		}
		if !d.Storage.Exists(input.Watermark.ImagePath) {
			return fmt.Errorf("watermark image %q not found", input.Watermark.ImagePath)
		}
	}
	return nil
}

func (d *Deps) recordOverlays(ctx context.Context, exec *orchestrator.Execution, videoID, variantID uuid.UUID, input *models.OverlaysInput) error {
	for i := range input.Overlays {
		o := &input.Overlays[i]
		payload, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("failed to marshal overlay payload: %w", err)
		}
		if _, err = exec.Videos().CreateOverlay(ctx, &models.Overlay{
			VideoID:   videoID,
			VariantID: uuid.NullUUID{UUID: variantID, Valid: true},
			Type:      o.Type,
			Payload:   payload,
		}); err != nil {
			return err
		}
	}
	return nil
}
