package models

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	VideoID          uuid.UUID `json:"video_id" db:"video_id"`
	OriginalFilename string    `json:"original_filename" db:"original_filename" validate:"required,lte=255"`
	StoredPath       string    `json:"stored_path" db:"stored_path"`
	SizeBytes        int64     `json:"size_bytes" db:"size_bytes"`
	DurationSec      *float64  `json:"duration_sec" db:"duration_sec"`
	MimeType         string    `json:"mime_type" db:"mime_type"`
	UploadedAt       time.Time `json:"uploaded_at" db:"uploaded_at"`
}

type VideoList struct {
	Videos     []*Video `json:"videos"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	HasMore    bool     `json:"has_more"`
}
