package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/models"
)

const defaultStatusTTL = 30 * time.Minute

type jobsRedisRepo struct {
	redisClient *redis.Client
	prefix      string
	ttl         time.Duration
}

func NewJobsRedisRepo(redisClient *redis.Client, cfg *config.Config) jobs.RedisRepository {
	prefix := cfg.Redis.JobStatusPrefix
	if prefix == "" {
		prefix = "jobstatus:"
	}
	ttl := defaultStatusTTL
	if cfg.Redis.JobStatusTTLSec > 0 {
		ttl = time.Duration(cfg.Redis.JobStatusTTLSec) * time.Second
	}
	return &jobsRedisRepo{
		redisClient: redisClient,
		prefix:      prefix,
		ttl:         ttl,
	}
}

func (r *jobsRedisRepo) CacheJobStatus(ctx context.Context, status *models.JobStatusResponse) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal job status %s: %w", status.JobID, err)
	}
	if err = r.redisClient.Set(ctx, r.prefix+status.JobID.String(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache job status %s: %w", status.JobID, err)
	}
	return nil
}

func (r *jobsRedisRepo) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.JobStatusResponse, error) {
	data, err := r.redisClient.Get(ctx, r.prefix+jobID.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached job status %s: %w", jobID, err)
	}
	status := &models.JobStatusResponse{}
	if err = json.Unmarshal(data, status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached job status %s: %w", jobID, err)
	}
	return status, nil
}
