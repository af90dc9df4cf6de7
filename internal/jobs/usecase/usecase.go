package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/jobs/handlers"
	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/videos"
	"github.com/clipstack/video-editor-backend/pkg/logger"
)

// Submitter hands accepted jobs to the worker pool.
type Submitter interface {
	Submit(ctx context.Context, job *models.Job, run orchestrator.HandlerFunc) error
}

type jobsUC struct {
	cfg        *config.Config
	jobsRepo   jobs.Repository
	redisRepo  jobs.RedisRepository
	videosRepo videos.Repository
	pool       Submitter
	handlers   *handlers.Deps
	logger     logger.Logger
}

func NewJobsUseCase(
	cfg *config.Config,
	jobsRepo jobs.Repository,
	redisRepo jobs.RedisRepository,
	videosRepo videos.Repository,
	pool Submitter,
	deps *handlers.Deps,
	log logger.Logger,
) jobs.UseCase {
	return &jobsUC{
		cfg:        cfg,
		jobsRepo:   jobsRepo,
		redisRepo:  redisRepo,
		videosRepo: videosRepo,
		pool:       pool,
		handlers:   deps,
		logger:     log,
	}
}

func (u *jobsUC) SubmitUploadProbe(ctx context.Context, video *models.Video) (*models.Job, error) {
	job, err := u.createJob(ctx, video.VideoID, nil, models.JobTypeUploadProbe)
	if err != nil {
		return nil, err
	}
	return u.submit(ctx, job, u.handlers.Probe(video.VideoID))
}

func (u *jobsUC) SubmitTrim(ctx context.Context, videoID uuid.UUID, input *models.TrimInput) (*models.Job, error) {
	if _, err := input.Start.Seconds(); err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	if _, err := input.End.Seconds(); err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}
	if err := u.checkSource(ctx, videoID, input.SourceVariantID); err != nil {
		return nil, err
	}
	job, err := u.createJob(ctx, videoID, input.SourceVariantID, models.JobTypeTrim)
	if err != nil {
		return nil, err
	}
	return u.submit(ctx, job, u.handlers.Trim(videoID, input))
}

func (u *jobsUC) SubmitOverlay(ctx context.Context, videoID uuid.UUID, input *models.OverlaysInput) (*models.Job, error) {
	if len(input.Overlays) == 0 && input.Watermark == nil {
		return nil, fmt.Errorf("at least one overlay or a watermark is required")
	}
	if err := u.checkSource(ctx, videoID, input.SourceVariantID); err != nil {
		return nil, err
	}
	job, err := u.createJob(ctx, videoID, input.SourceVariantID, models.JobTypeOverlay)
	if err != nil {
		return nil, err
	}
	return u.submit(ctx, job, u.handlers.Overlay(videoID, input))
}

func (u *jobsUC) SubmitTranscode(ctx context.Context, videoID uuid.UUID, input *models.TranscodeInput) (*models.Job, error) {
	if err := u.checkSource(ctx, videoID, input.SourceVariantID); err != nil {
		return nil, err
	}
	job, err := u.createJob(ctx, videoID, input.SourceVariantID, models.JobTypeTranscodeMulti)
	if err != nil {
		return nil, err
	}
	return u.submit(ctx, job, u.handlers.Transcode(videoID, input))
}

func (u *jobsUC) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.JobStatusResponse, error) {
	cached, err := u.redisRepo.GetJobStatus(ctx, jobID)
	if err != nil {
		u.logger.Warnf("job status cache read failed for %s: %v", jobID, err)
	}
	if cached != nil {
		return cached, nil
	}
	job, err := u.jobsRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	resp := job.Response()
	if err = u.redisRepo.CacheJobStatus(ctx, resp); err != nil {
		u.logger.Warnf("job status cache backfill failed for %s: %v", jobID, err)
	}
	return resp, nil
}

func (u *jobsUC) ListJobsByVideo(ctx context.Context, videoID uuid.UUID) ([]*models.JobStatusResponse, error) {
	if _, err := u.videosRepo.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}
	jobList, err := u.jobsRepo.GetJobsByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.JobStatusResponse, 0, len(jobList))
	for _, j := range jobList {
		responses = append(responses, j.Response())
	}
	return responses, nil
}

// checkSource verifies the video exists and, when a source variant is named,
// that it belongs to that video. Deep input validation stays in the handler;
// this is the synchronous shape check a submitter gets an error for.
func (u *jobsUC) checkSource(ctx context.Context, videoID uuid.UUID, sourceVariantID *uuid.UUID) error {
	if _, err := u.videosRepo.GetVideoByID(ctx, videoID); err != nil {
		return err
	}
	if sourceVariantID == nil {
		return nil
	}
	variant, err := u.videosRepo.GetVariantByID(ctx, *sourceVariantID)
	if err != nil {
		return err
	}
	if variant.VideoID != videoID {
		return fmt.Errorf("variant %s does not belong to video %s", variant.VariantID, videoID)
	}
	return nil
}

func (u *jobsUC) createJob(ctx context.Context, videoID uuid.UUID, sourceVariantID *uuid.UUID, jobType models.JobType) (*models.Job, error) {
	job := &models.Job{
		VideoID: videoID,
		Type:    jobType,
	}
	if sourceVariantID != nil {
		job.InputVariantID = uuid.NullUUID{UUID: *sourceVariantID, Valid: true}
	}
	created, err := u.jobsRepo.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	if err = u.redisRepo.CacheJobStatus(ctx, created.Response()); err != nil {
		u.logger.Warnf("failed to cache new job %s: %v", created.JobID, err)
	}
	return created, nil
}

// submit hands the job to the pool. A rejected job is already finalized as
// FAILURE; it is returned alongside the error so callers can expose the job
// id with the rejection.
func (u *jobsUC) submit(ctx context.Context, job *models.Job, run orchestrator.HandlerFunc) (*models.Job, error) {
	if err := u.pool.Submit(ctx, job, run); err != nil {
		u.logger.Errorf("job %s rejected: %v", job.JobID, err)
		return job, err
	}
	u.logger.Infof("job %s (%s) queued for video %s", job.JobID, job.Type, job.VideoID)
	return job, nil
}
