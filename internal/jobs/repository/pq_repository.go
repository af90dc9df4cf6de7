package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/pkg/db/postgres"
)

// ErrIllegalTransition is returned when a status update matches no row, which
// means the job is missing or already in a state that forbids the move.
var ErrIllegalTransition = fmt.Errorf("illegal job status transition")

type jobsRepo struct {
	db postgres.Queryer
}

func NewJobsRepo(db postgres.Queryer) jobs.Repository {
	return &jobsRepo{
		db: db,
	}
}

func (r *jobsRepo) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	created := &models.Job{}
	if err := r.db.QueryRowxContext(
		ctx,
		createJobQuery,
		job.VideoID,
		job.InputVariantID,
		job.Type,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

func (r *jobsRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job := &models.Job{}
	if err := r.db.GetContext(ctx, job, getJobByIDQuery, jobID); err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", jobID, err)
	}
	return job, nil
}

func (r *jobsRepo) GetJobsByVideo(ctx context.Context, videoID uuid.UUID) ([]*models.Job, error) {
	var jobList []*models.Job
	if err := r.db.SelectContext(ctx, &jobList, getJobsByVideoQuery, videoID); err != nil {
		return nil, fmt.Errorf("failed to get jobs for video %s: %w", videoID, err)
	}
	return jobList, nil
}

func (r *jobsRepo) MarkStarted(ctx context.Context, jobID uuid.UUID) error {
	return r.transition(ctx, "mark started", markStartedQuery, jobID)
}

func (r *jobsRepo) SetProgress(ctx context.Context, jobID uuid.UUID, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress %d out of range", progress)
	}
	return r.transition(ctx, "set progress", setProgressQuery, jobID, progress)
}

func (r *jobsRepo) SetOutputVariant(ctx context.Context, jobID uuid.UUID, variantID uuid.UUID) error {
	return r.transition(ctx, "set output variant", setOutputVariantQuery, jobID, variantID)
}

func (r *jobsRepo) MarkSuccess(ctx context.Context, jobID uuid.UUID) error {
	return r.transition(ctx, "mark success", markSuccessQuery, jobID)
}

func (r *jobsRepo) MarkFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	return r.transition(ctx, "mark failure", markFailureQuery, jobID, message)
}

func (r *jobsRepo) transition(ctx context.Context, op, query string, jobID uuid.UUID, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, append([]interface{}{jobID}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to %s for job %s: %w", op, jobID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check %s for job %s: %w", op, jobID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s for job %s: %w", op, jobID, ErrIllegalTransition)
	}
	return nil
}
