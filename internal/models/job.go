package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeUploadProbe    JobType = "upload_probe"
	JobTypeTrim           JobType = "trim"
	JobTypeOverlay        JobType = "overlay"
	JobTypeTranscodeMulti JobType = "transcode_multi"
)

type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusStarted JobStatus = "STARTED"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailure JobStatus = "FAILURE"
)

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSuccess || s == JobStatusFailure
}

type Job struct {
	JobID           uuid.UUID      `json:"job_id" db:"job_id"`
	VideoID         uuid.UUID      `json:"video_id" db:"video_id"`
	InputVariantID  uuid.NullUUID  `json:"-" db:"input_variant_id"`
	OutputVariantID uuid.NullUUID  `json:"-" db:"output_variant_id"`
	Type            JobType        `json:"type" db:"type"`
	Status          JobStatus      `json:"status" db:"status"`
	Progress        int            `json:"progress" db:"progress"`
	ErrorMessage    sql.NullString `json:"-" db:"error_message"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

type JobStatusResponse struct {
	JobID           uuid.UUID  `json:"job_id"`
	VideoID         uuid.UUID  `json:"video_id"`
	Type            JobType    `json:"type"`
	Status          JobStatus  `json:"status"`
	Progress        int        `json:"progress"`
	ErrorMessage    *string    `json:"error_message,omitempty"`
	OutputVariantID *uuid.UUID `json:"output_variant_id,omitempty"`
}

func (j *Job) Response() *JobStatusResponse {
	resp := &JobStatusResponse{
		JobID:    j.JobID,
		VideoID:  j.VideoID,
		Type:     j.Type,
		Status:   j.Status,
		Progress: j.Progress,
	}
	if j.ErrorMessage.Valid {
		msg := j.ErrorMessage.String
		resp.ErrorMessage = &msg
	}
	if j.OutputVariantID.Valid {
		id := j.OutputVariantID.UUID
		resp.OutputVariantID = &id
	}
	return resp
}
