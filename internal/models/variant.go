package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type VariantKind string

const (
	VariantKindTrim      VariantKind = "trim"
	VariantKindOverlay   VariantKind = "overlay"
	VariantKindWatermark VariantKind = "watermark"
	VariantKindTranscode VariantKind = "transcode"
)

type VariantQuality string

const (
	QualitySource VariantQuality = "source"
	Quality1080p  VariantQuality = "1080p"
	Quality720p   VariantQuality = "720p"
	Quality480p   VariantQuality = "480p"
)

// QualityHeights maps quality tiers to target output heights.
var QualityHeights = map[VariantQuality]int{
	Quality1080p: 1080,
	Quality720p:  720,
	Quality480p:  480,
}

type VideoVariant struct {
	VariantID       uuid.UUID      `json:"variant_id" db:"variant_id"`
	VideoID         uuid.UUID      `json:"video_id" db:"video_id"`
	Kind            VariantKind    `json:"kind" db:"kind"`
	Quality         VariantQuality `json:"quality" db:"quality"`
	SourceVariantID uuid.NullUUID  `json:"-" db:"source_variant_id"`
	StoredPath      string         `json:"stored_path" db:"stored_path"`
	SizeBytes       int64          `json:"size_bytes" db:"size_bytes"`
	DurationSec     float64        `json:"duration_sec" db:"duration_sec"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	Config          types.JSONText `json:"config_json,omitempty" db:"config_json"`
}

type VariantResponse struct {
	VariantID       uuid.UUID      `json:"variant_id"`
	VideoID         uuid.UUID      `json:"video_id"`
	Kind            VariantKind    `json:"kind"`
	Quality         VariantQuality `json:"quality"`
	SourceVariantID *uuid.UUID     `json:"source_variant_id,omitempty"`
	StoredPath      string         `json:"stored_path"`
	SizeBytes       int64          `json:"size_bytes"`
	DurationSec     float64        `json:"duration_sec"`
	CreatedAt       time.Time      `json:"created_at"`
	Config          types.JSONText `json:"config_json,omitempty"`
}

func (v *VideoVariant) Response() *VariantResponse {
	resp := &VariantResponse{
		VariantID:   v.VariantID,
		VideoID:     v.VideoID,
		Kind:        v.Kind,
		Quality:     v.Quality,
		StoredPath:  v.StoredPath,
		SizeBytes:   v.SizeBytes,
		DurationSec: v.DurationSec,
		CreatedAt:   v.CreatedAt,
		Config:      v.Config,
	}
	if v.SourceVariantID.Valid {
		id := v.SourceVariantID.UUID
		resp.SourceVariantID = &id
	}
	return resp
}

type VariantList struct {
	Variants   []*VariantResponse `json:"variants"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	HasMore    bool               `json:"has_more"`
}
