package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/ffmpeg"
	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/storage"
	"github.com/clipstack/video-editor-backend/internal/videos"
	"github.com/clipstack/video-editor-backend/pkg/logger"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

type fakeVideosRepo struct {
	videos   map[uuid.UUID]*models.Video
	variants map[uuid.UUID]*models.VideoVariant
}

func newFakeVideosRepo() *fakeVideosRepo {
	return &fakeVideosRepo{
		videos:   make(map[uuid.UUID]*models.Video),
		variants: make(map[uuid.UUID]*models.VideoVariant),
	}
}

func (r *fakeVideosRepo) CreateVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	video.VideoID = uuid.New()
	r.videos[video.VideoID] = video
	return video, nil
}

func (r *fakeVideosRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	video, ok := r.videos[videoID]
	if !ok {
		return nil, errNotFound
	}
	return video, nil
}

func (r *fakeVideosRepo) GetVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	return &models.VideoList{}, nil
}

func (r *fakeVideosRepo) UpdateVideoProbe(ctx context.Context, videoID uuid.UUID, durationSec float64, sizeBytes int64) error {
	video, ok := r.videos[videoID]
	if !ok {
		return errNotFound
	}
	video.DurationSec = &durationSec
	video.SizeBytes = sizeBytes
	return nil
}

func (r *fakeVideosRepo) CreateVariant(ctx context.Context, variant *models.VideoVariant) (*models.VideoVariant, error) {
	variant.VariantID = uuid.New()
	r.variants[variant.VariantID] = variant
	return variant, nil
}

func (r *fakeVideosRepo) GetVariantByID(ctx context.Context, variantID uuid.UUID) (*models.VideoVariant, error) {
	variant, ok := r.variants[variantID]
	if !ok {
		return nil, errNotFound
	}
	return variant, nil
}

func (r *fakeVideosRepo) GetVariantsByVideo(ctx context.Context, videoID uuid.UUID) (*models.VariantList, error) {
	return &models.VariantList{}, nil
}

func (r *fakeVideosRepo) CreateOverlay(ctx context.Context, overlay *models.Overlay) (*models.Overlay, error) {
	overlay.OverlayID = uuid.New()
	return overlay, nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "not found" }

type fakeJobsRepo struct{}

func (*fakeJobsRepo) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	return job, nil
}
func (*fakeJobsRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	return nil, errNotFound
}
func (*fakeJobsRepo) GetJobsByVideo(ctx context.Context, videoID uuid.UUID) ([]*models.Job, error) {
	return nil, nil
}
func (*fakeJobsRepo) MarkStarted(ctx context.Context, jobID uuid.UUID) error { return nil }
func (*fakeJobsRepo) SetProgress(ctx context.Context, jobID uuid.UUID, progress int) error {
	return nil
}
func (*fakeJobsRepo) SetOutputVariant(ctx context.Context, jobID uuid.UUID, variantID uuid.UUID) error {
	return nil
}
func (*fakeJobsRepo) MarkSuccess(ctx context.Context, jobID uuid.UUID) error { return nil }
func (*fakeJobsRepo) MarkFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	return nil
}

type fakeSession struct {
	videosRepo *fakeVideosRepo
}

func (s *fakeSession) Jobs() jobs.Repository     { return &fakeJobsRepo{} }
func (s *fakeSession) Videos() videos.Repository { return s.videosRepo }
func (s *fakeSession) Close() error              { return nil }

type testEnv struct {
	deps       *Deps
	videosRepo *fakeVideosRepo
	exec       *orchestrator.Execution
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{}
	cfg.Media.Root = t.TempDir()

	log := logger.NewApiLogger(cfg)
	log.InitLogger()

	store, err := storage.New(cfg)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	videosRepo := newFakeVideosRepo()
	job := &models.Job{JobID: uuid.New(), Status: models.JobStatusStarted}
	return &testEnv{
		deps:       NewDeps(ffmpeg.New(cfg, log), store, log),
		videosRepo: videosRepo,
		exec:       orchestrator.NewExecution(job, &fakeSession{videosRepo: videosRepo}, nil, log),
	}
}

func (e *testEnv) addVideo(durationSec float64) *models.Video {
	video := &models.Video{
		VideoID:     uuid.New(),
		StoredPath:  "/tmp/does-not-matter.mp4",
		DurationSec: &durationSec,
	}
	e.videosRepo.videos[video.VideoID] = video
	return video
}

func TestTrimRejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t)
	video := env.addVideo(10)

	run := env.deps.Trim(video.VideoID, &models.TrimInput{
		Start: utils.Timecode("00:00:05"),
		End:   utils.Timecode("00:00:02"),
	})
	err := run(context.Background(), env.exec)
	if err == nil {
		t.Fatal("expected inverted range to fail")
	}
}

func TestTrimRejectsRangeBeyondDuration(t *testing.T) {
	env := newTestEnv(t)
	video := env.addVideo(10)

	run := env.deps.Trim(video.VideoID, &models.TrimInput{
		Start: utils.Timecode("15"),
		End:   utils.Timecode("20"),
	})
	if err := run(context.Background(), env.exec); err == nil {
		t.Fatal("expected out-of-range trim to fail after clamping")
	}
}

func TestTrimRejectsForeignSourceVariant(t *testing.T) {
	env := newTestEnv(t)
	video := env.addVideo(10)
	other := env.addVideo(10)
	variant := &models.VideoVariant{
		VariantID:   uuid.New(),
		VideoID:     other.VideoID,
		DurationSec: 5,
	}
	env.videosRepo.variants[variant.VariantID] = variant

	run := env.deps.Trim(video.VideoID, &models.TrimInput{
		Start:           utils.Timecode("0"),
		End:             utils.Timecode("2"),
		SourceVariantID: &variant.VariantID,
	})
	err := run(context.Background(), env.exec)
	if err == nil || !strings.Contains(err.Error(), "does not belong") {
		t.Fatalf("err = %v, want ownership rejection", err)
	}
}

func TestOverlayRejectsAssetOutsideMediaTree(t *testing.T) {
	env := newTestEnv(t)
	video := env.addVideo(10)

	run := env.deps.Overlay(video.VideoID, &models.OverlaysInput{
		Overlays: []models.OverlaySpec{
			{Type: models.OverlayTypeImage, ImagePath: "/etc/passwd"},
		},
	})
	err := run(context.Background(), env.exec)
	if err == nil || !strings.Contains(err.Error(), "not allowed") {
		t.Fatalf("err = %v, want asset path rejection", err)
	}
}

func TestOverlayRejectsMissingWatermarkFile(t *testing.T) {
	env := newTestEnv(t)
	video := env.addVideo(10)

	run := env.deps.Overlay(video.VideoID, &models.OverlaysInput{
		Watermark: &models.WatermarkSpec{
			ImagePath: env.deps.Storage.Root() + "/missing.png",
		},
	})
	err := run(context.Background(), env.exec)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want missing watermark rejection", err)
	}
}

func TestDedupeQualitiesOrdersHighestFirst(t *testing.T) {
	got := dedupeQualities([]models.VariantQuality{
		models.Quality480p,
		models.Quality1080p,
		models.Quality480p,
		models.Quality720p,
	})
	want := []models.VariantQuality{models.Quality1080p, models.Quality720p, models.Quality480p}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
