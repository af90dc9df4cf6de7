package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/pkg/logger"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

const (
	defaultWorkerCount   = 4
	defaultQueueSize     = 64
	defaultCPUCheckDelay = 2 * time.Second
)

// HandlerFunc runs the work of one job. A nil return finalizes the job as
// SUCCESS; a non-nil return finalizes it as FAILURE with the error text.
type HandlerFunc func(ctx context.Context, exec *Execution) error

// ErrQueueFull is returned by Submit when the task queue has no room. The
// job row is marked FAILURE before Submit returns.
var ErrQueueFull = fmt.Errorf("job queue is full")

// ErrStopped is returned by Submit after Shutdown has begun.
var ErrStopped = fmt.Errorf("orchestrator is stopped")

type task struct {
	job *models.Job
	run HandlerFunc
}

// Orchestrator executes jobs on a fixed pool of workers fed by a bounded
// queue. Each execution gets its own database session and finalizes the job
// exactly once.
type Orchestrator struct {
	cfg      *config.Config
	sessions jobs.SessionFactory
	cache    jobs.RedisRepository
	logger   logger.Logger

	tasks chan task
	wg    sync.WaitGroup

	mu      sync.RWMutex
	stopped bool

	cpuGate func() (bool, float64)
}

func New(cfg *config.Config, sessions jobs.SessionFactory, cache jobs.RedisRepository, log logger.Logger) *Orchestrator {
	queueSize := cfg.Worker.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	o := &Orchestrator{
		cfg:      cfg,
		sessions: sessions,
		cache:    cache,
		logger:   log,
		tasks:    make(chan task, queueSize),
	}
	if cfg.Worker.MaxCPUUsage > 0 {
		o.cpuGate = func() (bool, float64) {
			return utils.CheckCPUUsage(cfg.Worker.MaxCPUUsage)
		}
	}
	return o
}

// Start launches the worker pool. Workers exit when Shutdown closes the
// queue or when ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCount := o.cfg.Worker.WorkerCount
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	o.logger.Infof("starting %d job workers, queue size %d", workerCount, cap(o.tasks))
	for i := 0; i < workerCount; i++ {
		o.wg.Add(1)
		go o.worker(ctx, i)
	}
}

// Submit enqueues a PENDING job for execution. When the queue is full or the
// orchestrator is stopped, the job is marked FAILURE and the error returned,
// so the caller can report the rejection synchronously.
//
// The worker owns its job record exclusively, so the queue carries a copy:
// the caller's struct is never touched after Submit returns.
func (o *Orchestrator) Submit(ctx context.Context, job *models.Job, run HandlerFunc) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.stopped {
		o.reject(ctx, job, ErrStopped)
		return ErrStopped
	}
	queued := *job
	select {
	case o.tasks <- task{job: &queued, run: run}:
		return nil
	default:
		o.reject(ctx, job, ErrQueueFull)
		return ErrQueueFull
	}
}

// Shutdown stops intake and waits for in-flight jobs, up to the context
// deadline.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return nil
	}
	o.stopped = true
	close(o.tasks)
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown wait: %w", ctx.Err())
	}
}

func (o *Orchestrator) reject(ctx context.Context, job *models.Job, cause error) {
	session, err := o.sessions.Open(ctx)
	if err != nil {
		o.logger.Errorf("failed to open session to reject job %s: %v", job.JobID, err)
		return
	}
	defer session.Close()
	if err = session.Jobs().MarkFailure(ctx, job.JobID, cause.Error()); err != nil {
		o.logger.Errorf("failed to reject job %s: %v", job.JobID, err)
		return
	}
	job.Status = models.JobStatusFailure
	job.ErrorMessage.String = cause.Error()
	job.ErrorMessage.Valid = true
	o.mirror(ctx, job)
}

func (o *Orchestrator) worker(ctx context.Context, id int) {
	defer o.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-o.tasks:
			if !ok {
				return
			}
			o.waitForCPU(ctx, id)
			o.execute(ctx, t)
		}
	}
}

// waitForCPU holds the worker back while the host is above the configured
// CPU ceiling, so ffmpeg invocations do not pile up on a saturated machine.
func (o *Orchestrator) waitForCPU(ctx context.Context, id int) {
	if o.cpuGate == nil {
		return
	}
	delay := time.Duration(o.cfg.Worker.CPUCheckDelay) * time.Second
	if delay <= 0 {
		delay = defaultCPUCheckDelay
	}
	for {
		ok, usage := o.cpuGate()
		if ok {
			return
		}
		o.logger.Debugf("worker %d waiting, cpu usage %.1f%% above limit", id, usage)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

func (o *Orchestrator) execute(ctx context.Context, t task) {
	session, err := o.sessions.Open(ctx)
	if err != nil {
		o.logger.Errorf("failed to open session for job %s: %v", t.job.JobID, err)
		return
	}
	defer session.Close()

	repo := session.Jobs()
	if err = repo.MarkStarted(ctx, t.job.JobID); err != nil {
		o.logger.Errorf("failed to start job %s: %v", t.job.JobID, err)
		return
	}
	t.job.Status = models.JobStatusStarted
	o.mirror(ctx, t.job)

	exec := NewExecution(t.job, session, o.cache, o.logger)

	runErr := o.runHandler(ctx, t, exec)
	if runErr != nil {
		o.logger.Errorf("job %s (%s) failed: %v", t.job.JobID, t.job.Type, runErr)
		if err = repo.MarkFailure(ctx, t.job.JobID, runErr.Error()); err != nil {
			o.logger.Errorf("failed to finalize job %s as FAILURE: %v", t.job.JobID, err)
			return
		}
		t.job.Status = models.JobStatusFailure
		t.job.ErrorMessage.String = runErr.Error()
		t.job.ErrorMessage.Valid = true
		t.job.OutputVariantID = uuid.NullUUID{}
		o.mirror(ctx, t.job)
		return
	}

	if err = repo.MarkSuccess(ctx, t.job.JobID); err != nil {
		o.logger.Errorf("failed to finalize job %s as SUCCESS: %v", t.job.JobID, err)
		return
	}
	t.job.Status = models.JobStatusSuccess
	t.job.Progress = 100
	o.mirror(ctx, t.job)
	o.logger.Infof("job %s (%s) completed", t.job.JobID, t.job.Type)
}

// runHandler isolates handler panics so a crashing job cannot take down the
// worker. A panic finalizes the job as FAILURE like any other error.
func (o *Orchestrator) runHandler(ctx context.Context, t task, exec *Execution) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return t.run(ctx, exec)
}

func (o *Orchestrator) mirror(ctx context.Context, job *models.Job) {
	if o.cache == nil {
		return
	}
	if err := o.cache.CacheJobStatus(ctx, job.Response()); err != nil {
		o.logger.Warnf("failed to mirror job %s status to cache: %v", job.JobID, err)
	}
}
