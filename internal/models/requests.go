package models

import (
	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/pkg/utils"
)

// TrimInput is the request body for a trim job submission.
type TrimInput struct {
	Start           utils.Timecode `json:"start" validate:"required"`
	End             utils.Timecode `json:"end" validate:"required"`
	SourceVariantID *uuid.UUID     `json:"source_variant_id,omitempty"`
}

// OverlaysInput is the request body for an overlay composite job submission.
type OverlaysInput struct {
	Overlays        []OverlaySpec  `json:"overlays" validate:"dive"`
	Watermark       *WatermarkSpec `json:"watermark,omitempty"`
	SourceVariantID *uuid.UUID     `json:"source_variant_id,omitempty"`
}

// WatermarkInput applies a full-duration image watermark. It runs as an
// overlay job with no other overlays.
type WatermarkInput struct {
	Watermark       *WatermarkSpec `json:"watermark" validate:"required"`
	SourceVariantID *uuid.UUID     `json:"source_variant_id,omitempty"`
}

// TranscodeInput is the request body for a multi-quality transcode submission.
type TranscodeInput struct {
	Qualities       []VariantQuality `json:"qualities" validate:"required,min=1,dive,oneof=1080p 720p 480p"`
	SourceVariantID *uuid.UUID       `json:"source_variant_id,omitempty"`
}
