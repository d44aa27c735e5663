package service

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"learning-log/internal/domain"
	"learning-log/pkg/metrics"
)

// pageSize is the number of extracted pages shown per view.
const pageSize = 1

// ReaderService implements the PDF reading flow: store an optional upload,
// resolve the session reference, extract the pages and paginate them.
// It keeps no state between requests; the session reference is passed in
// and handed back through ReadRequest and ReadResult.
type ReaderService struct {
	store     domain.UploadStore
	extractor domain.PageExtractor
	validator domain.DocumentValidator
	storage   domain.StorageService
	logger    domain.Logger
}

// NewReaderService creates a reader. validator and storage may be nil.
func NewReaderService(
	store domain.UploadStore,
	extractor domain.PageExtractor,
	validator domain.DocumentValidator,
	storage domain.StorageService,
	logger domain.Logger,
) *ReaderService {
	return &ReaderService{
		store:     store,
		extractor: extractor,
		validator: validator,
		storage:   storage,
		logger:    logger,
	}
}

// Read handles one request. When req.Upload is set the file is stored first
// and the returned Reference points at it. A missing or stale reference
// yields an empty view without error. When extraction fails the error is
// returned together with a result carrying only the Reference, so a stored
// upload is still recorded by the caller.
func (s *ReaderService) Read(ctx context.Context, req domain.ReadRequest) (*domain.ReadResult, error) {
	reference := req.Reference

	if req.Upload != nil {
		stored, err := s.storeUpload(ctx, req.SessionID, req.Upload)
		if err != nil {
			return nil, err
		}
		reference = stored
	}

	result := &domain.ReadResult{Reference: reference}

	docPath, ok := s.store.CurrentPath(reference)
	if !ok {
		if reference != "" {
			s.logger.Debug("Stored reference no longer exists", "reference", reference)
		}
		result.View = Paginate(nil, req.Page, pageSize)
		return result, nil
	}

	pages, err := s.extractor.ExtractPages(docPath)
	if err != nil {
		s.logger.Error("Failed to extract PDF pages", err, "path", docPath)
		return result, err
	}

	content := make([]string, len(pages))
	for i, p := range pages {
		content[i] = p.Display()
		metrics.PagesExtracted.WithLabelValues(string(p.Status)).Inc()
		if p.Status == domain.PageStatusFailed {
			s.logger.Warn("Failed to extract text from page", "path", docPath, "page", p.Number, "error", p.Err)
		}
	}

	result.Pages = pages
	result.NumPages = len(pages)
	result.View = Paginate(content, req.Page, pageSize)
	return result, nil
}

func (s *ReaderService) storeUpload(ctx context.Context, sessionID string, upload *domain.Upload) (string, error) {
	stored, err := s.store.Store(upload.FileName, upload.Content)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		s.logger.Error("Failed to store upload", err, "file_name", upload.FileName)
		return "", err
	}

	if s.validator != nil {
		if err := s.validator.Validate(stored); err != nil {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			s.logger.Warn("Rejected invalid upload", "path", stored, "error", err)
			if rmErr := os.Remove(stored); rmErr != nil {
				s.logger.Error("Failed to remove rejected upload", rmErr, "path", stored)
			}
			return "", err
		}
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	s.mirror(ctx, sessionID, stored)
	return stored, nil
}

// mirror copies a stored upload to remote storage. Failures are logged only;
// the local file stays authoritative.
func (s *ReaderService) mirror(ctx context.Context, sessionID, stored string) {
	if s.storage == nil {
		return
	}
	f, err := os.Open(stored)
	if err != nil {
		s.logger.Error("Failed to open upload for mirroring", err, "path", stored)
		return
	}
	defer f.Close()

	remote := path.Join(sessionID, filepath.Base(stored))
	if err := s.storage.Upload(ctx, remote, f); err != nil {
		s.logger.Warn("Failed to mirror upload", "path", stored, "remote", remote, "error", err)
		return
	}
	s.logger.Debug("Mirrored upload", "remote", remote)
}
