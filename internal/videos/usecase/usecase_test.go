package usecase

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/storage"
	"github.com/clipstack/video-editor-backend/pkg/logger"
)

func newUploadUC(t *testing.T, maxUploadMB int) *videosUC {
	t.Helper()
	cfg := &config.Config{}
	cfg.Media.Root = t.TempDir()
	cfg.Media.MaxUploadSizeMB = maxUploadMB

	log := logger.NewApiLogger(cfg)
	log.InitLogger()

	store, err := storage.New(cfg)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	return &videosUC{cfg: cfg, store: store, logger: log}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	uc := newUploadUC(t, 0)
	header := &multipart.FileHeader{Filename: "notes.txt", Size: 10}

	_, _, err := uc.UploadVideo(context.Background(), header)
	if err == nil || !strings.Contains(err.Error(), "unsupported video format") {
		t.Fatalf("err = %v, want unsupported format rejection", err)
	}
}

func TestUploadRejectsMissingFilename(t *testing.T) {
	uc := newUploadUC(t, 0)
	header := &multipart.FileHeader{Size: 10}

	if _, _, err := uc.UploadVideo(context.Background(), header); err == nil {
		t.Fatal("expected empty filename to be rejected")
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	uc := newUploadUC(t, 1)
	header := &multipart.FileHeader{Filename: "clip.mp4", Size: 2 << 20}

	_, _, err := uc.UploadVideo(context.Background(), header)
	if err == nil || !strings.Contains(err.Error(), "upload limit") {
		t.Fatalf("err = %v, want size limit rejection", err)
	}
}

func TestUploadExtensionCheckIsCaseInsensitive(t *testing.T) {
	uc := newUploadUC(t, 0)
	header := &multipart.FileHeader{Filename: "CLIP.MP4", Size: 10}

	// ext is allowed, so the failure comes later from opening the part
	_, _, err := uc.UploadVideo(context.Background(), header)
	if err != nil && strings.Contains(err.Error(), "unsupported video format") {
		t.Fatalf("uppercase extension rejected: %v", err)
	}
}
