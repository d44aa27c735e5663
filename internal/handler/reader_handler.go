package handler

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"learning-log/internal/domain"
)

const (
	uploadFieldName      = "pdf_file"
	multipartMemoryLimit = 32 << 20
)

// ReaderHandler serves the PDF reading page.
type ReaderHandler struct {
	reader        domain.ReaderService
	sessions      domain.SessionStore
	maxUploadSize int64
	logger        domain.Logger
}

func NewReaderHandler(reader domain.ReaderService, sessions domain.SessionStore, maxUploadSize int64, logger domain.Logger) *ReaderHandler {
	return &ReaderHandler{
		reader:        reader,
		sessions:      sessions,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

type readPDFResponse struct {
	PageObj  domain.PageView `json:"page_obj"`
	NumPages int             `json:"num_pages"`
}

// ReadPDF handles GET and POST /read_pdf. A POST may carry a new document
// in the pdf_file field; it replaces the one recorded in the session.
func (h *ReaderHandler) ReadPDF(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	reference, _, err := h.sessions.Get(user.ID, domain.SessionKeySavedPDFPath)
	if err != nil {
		h.logger.Error("Failed to load session", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	req := domain.ReadRequest{
		SessionID: user.ID,
		Reference: reference,
		Page:      parsePage(r.URL.Query().Get("page")),
	}

	if r.Method == http.MethodPost {
		upload, status, msg := h.readUpload(w, r)
		if status != 0 {
			writeError(w, status, msg)
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}
		if upload != nil {
			if c, ok := upload.Content.(io.Closer); ok {
				defer c.Close()
			}
		}
		req.Upload = upload
	}

	result, err := h.reader.Read(r.Context(), req)

	// A stored upload is recorded even when it cannot be read.
	if result != nil && result.Reference != "" && result.Reference != reference {
		if setErr := h.sessions.Set(user.ID, domain.SessionKeySavedPDFPath, result.Reference); setErr != nil {
			h.logger.Error("Failed to save session", setErr, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "Failed to save session")
			return
		}
		h.logger.Info("PDF uploaded", "user_id", user.ID, "path", result.Reference)
	}

	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, readPDFResponse{
		PageObj:  result.View,
		NumPages: result.NumPages,
	})
}

// readUpload returns the uploaded file, or nil when the request has none.
// A non-zero status means the request must be rejected.
func (h *ReaderHandler) readUpload(w http.ResponseWriter, r *http.Request) (*domain.Upload, int, string) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, 0, ""
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, http.StatusBadRequest, "File too large"
		}
		return nil, http.StatusBadRequest, "Invalid multipart form"
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, 0, ""
		}
		return nil, http.StatusBadRequest, "Invalid file upload"
	}

	return &domain.Upload{FileName: header.Filename, Content: file}, 0, ""
}

// parsePage reads the requested page number; anything that is not an
// integer means the first page. Values too large for an int saturate so
// pagination clamps them to the last page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-") {
			return math.MaxInt
		}
		return 1
	}
	return page
}
