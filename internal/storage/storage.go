// Package storage owns the local media tree: uploaded originals under
// uploads/, produced variants under variants/. Outputs are always written to
// a temporary name first and promoted with an atomic rename.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/google/uuid"
)

const (
	UploadsDir  = "uploads"
	VariantsDir = "variants"
)

type StoredFile struct {
	Path      string
	SizeBytes int64
}

type Storage struct {
	root      string
	assetsDir string
}

func New(cfg *config.Config) (*Storage, error) {
	root := cfg.Media.Root
	if root == "" {
		root = "data"
	}
	s := &Storage{root: root, assetsDir: cfg.Media.AssetsDir}
	for _, dir := range []string{UploadsDir, VariantsDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
		}
	}
	return s, nil
}

func (s *Storage) Root() string {
	return s.root
}

// SaveUpload copies an uploaded stream into uploads/ under a fresh uuid
// name, writing through a temp file and promoting on success.
func (s *Storage) SaveUpload(src io.Reader, originalName string) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	tempPath, finalPath := s.TempAndFinal(UploadsDir, ext)

	out, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	size, err := io.Copy(out, src)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.Delete(tempPath)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	if err := s.Promote(tempPath, finalPath); err != nil {
		s.Delete(tempPath)
		return nil, err
	}
	return &StoredFile{Path: finalPath, SizeBytes: size}, nil
}

// TempAndFinal allocates a temp/final path pair inside the given media
// subdirectory. Both names share a uuid so a stray temp file is traceable
// to its intended output.
func (s *Storage) TempAndFinal(subdir, ext string) (string, string) {
	id := uuid.New().String()
	dir := filepath.Join(s.root, subdir)
	return filepath.Join(dir, "tmp_"+id+ext), filepath.Join(dir, id+ext)
}

// Promote atomically renames a committed temp file to its final path.
func (s *Storage) Promote(tempPath, finalPath string) error {
	if err := os.Rename(tempPath, finalPath); err != nil {
		return fmt.Errorf("failed to commit output file: %w", err)
	}
	return nil
}

// Delete removes a file, ignoring files that are already gone.
func (s *Storage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *Storage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ValidAssetPath reports whether an overlay asset path resolves inside the
// media root or the configured assets directory.
func (s *Storage) ValidAssetPath(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	for _, base := range []string{s.assetsDir, s.root} {
		if base == "" {
			continue
		}
		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		if abs == absBase || strings.HasPrefix(abs, absBase+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// FileSize returns the byte size of a stored file.
func (s *Storage) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Size(), nil
}
