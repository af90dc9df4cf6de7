package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clipstack/video-editor-backend/internal/config"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	cfg := &config.Config{}
	cfg.Media.Root = t.TempDir()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewCreatesMediaTree(t *testing.T) {
	s := newTestStorage(t)
	for _, dir := range []string{UploadsDir, VariantsDir} {
		if _, err := os.Stat(filepath.Join(s.Root(), dir)); err != nil {
			t.Errorf("missing media dir %s: %v", dir, err)
		}
	}
}

func TestSaveUpload(t *testing.T) {
	s := newTestStorage(t)

	stored, err := s.SaveUpload(strings.NewReader("fake video bytes"), "Clip.MP4")
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if stored.SizeBytes != int64(len("fake video bytes")) {
		t.Errorf("size = %d", stored.SizeBytes)
	}
	if !strings.HasSuffix(stored.Path, ".mp4") {
		t.Errorf("extension not normalized: %s", stored.Path)
	}
	if !s.Exists(stored.Path) {
		t.Error("stored file does not exist")
	}
	if strings.Contains(filepath.Base(stored.Path), "tmp_") {
		t.Error("upload left at temp path")
	}
}

func TestTempAndFinalSharePrefix(t *testing.T) {
	s := newTestStorage(t)
	temp, final := s.TempAndFinal(VariantsDir, ".mp4")
	if filepath.Base(temp) != "tmp_"+filepath.Base(final) {
		t.Errorf("temp %s does not pair with final %s", temp, final)
	}

	temp2, final2 := s.TempAndFinal(VariantsDir, ".mp4")
	if temp == temp2 || final == final2 {
		t.Error("path pairs must be unique per allocation")
	}
}

func TestPromote(t *testing.T) {
	s := newTestStorage(t)
	temp, final := s.TempAndFinal(VariantsDir, ".mp4")

	if err := os.WriteFile(temp, []byte("out"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Promote(temp, final); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if s.Exists(temp) {
		t.Error("temp file still present after promote")
	}
	if !s.Exists(final) {
		t.Error("final file missing after promote")
	}
}

func TestPromoteMissingTempFails(t *testing.T) {
	s := newTestStorage(t)
	temp, final := s.TempAndFinal(VariantsDir, ".mp4")
	if err := s.Promote(temp, final); err == nil {
		t.Fatal("expected promote of missing temp file to fail")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestStorage(t)
	temp, _ := s.TempAndFinal(VariantsDir, ".mp4")
	if err := os.WriteFile(temp, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(temp); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(temp); err != nil {
		t.Errorf("Delete of missing file should not error: %v", err)
	}
}

func TestValidAssetPath(t *testing.T) {
	cfg := &config.Config{}
	cfg.Media.Root = t.TempDir()
	cfg.Media.AssetsDir = t.TempDir()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !s.ValidAssetPath(filepath.Join(cfg.Media.AssetsDir, "logo.png")) {
		t.Error("asset inside assets dir rejected")
	}
	if !s.ValidAssetPath(filepath.Join(cfg.Media.Root, UploadsDir, "clip.mp4")) {
		t.Error("asset inside media root rejected")
	}
	if s.ValidAssetPath("/etc/passwd") {
		t.Error("path outside allowed directories accepted")
	}
	if s.ValidAssetPath(filepath.Join(cfg.Media.AssetsDir, "..", "escape.png")) {
		t.Error("parent traversal accepted")
	}
}

func TestFileSize(t *testing.T) {
	s := newTestStorage(t)
	temp, _ := s.TempAndFinal(VariantsDir, ".bin")
	if err := os.WriteFile(temp, make([]byte, 1234), 0o644); err != nil {
		t.Fatal(err)
	}
	size, err := s.FileSize(temp)
	if err != nil {
		t.Fatalf("FileSize: %v", err)
	}
	if size != 1234 {
		t.Errorf("size = %d, want 1234", size)
	}
}
