package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"learning-log/internal/domain"

	"github.com/google/uuid"
)

const (
	defaultUploadName = "document.pdf"
	maxNameAttempts   = 16
	suffixLength      = 7
)

// FileUploadStore writes uploads into a single directory on the local filesystem.
type FileUploadStore struct {
	dir    string
	logger domain.Logger
}

// NewFileUploadStore creates an upload store rooted at dir.
func NewFileUploadStore(dir string, logger domain.Logger) *FileUploadStore {
	return &FileUploadStore{
		dir:    dir,
		logger: logger,
	}
}

// Store writes content under the upload directory and returns the path of the
// new file. An existing file is never overwritten: on a name collision a
// random suffix is appended before the extension. On failure the partial file
// is removed and the returned error wraps domain.ErrUploadWriteFailure.
func (s *FileUploadStore) Store(fileName string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create upload directory %s: %w", domain.ErrUploadWriteFailure, s.dir, err)
	}

	name := sanitizeFileName(fileName)

	var (
		file *os.File
		path string
	)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = withRandomSuffix(name)
		}
		path = filepath.Join(s.dir, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: create %s: %w", domain.ErrUploadWriteFailure, path, err)
		}
		file = f
		break
	}
	if file == nil {
		return "", fmt.Errorf("%w: no free name for %s", domain.ErrUploadWriteFailure, name)
	}

	written, err := io.Copy(file, content)
	if err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: write %s: %w", domain.ErrUploadWriteFailure, path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: close %s: %w", domain.ErrUploadWriteFailure, path, err)
	}

	s.logger.Info("Stored upload", "path", path, "bytes", written)
	return path, nil
}

// CurrentPath resolves a stored reference. It reports false when the
// reference is empty or the file no longer exists.
func (s *FileUploadStore) CurrentPath(reference string) (string, bool) {
	if reference == "" {
		return "", false
	}
	info, err := os.Stat(reference)
	if err != nil || info.IsDir() {
		return "", false
	}
	return reference, true
}

// sanitizeFileName strips any path components from a client supplied name.
func sanitizeFileName(fileName string) string {
	name := strings.TrimSpace(fileName)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return defaultUploadName
	}
	return name
}

func withRandomSuffix(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
	return stem + "_" + suffix + ext
}
