package domain

import (
	"context"
	"io"
)

// PlaceholderText is shown for pages without extractable text.
const PlaceholderText = "No content on this page"

// PageStatus describes how the text of a single page was obtained.
type PageStatus string

const (
	PageStatusText   PageStatus = "text"
	PageStatusEmpty  PageStatus = "empty"
	PageStatusFailed PageStatus = "failed"
)

// PageText is the extraction result for one source page.
type PageText struct {
	Number int        `json:"number"` // 1-indexed
	Text   string     `json:"text"`
	Status PageStatus `json:"status"`
	Err    error      `json:"-"`
}

// Display returns the page text, or the placeholder when the page had none.
func (p PageText) Display() string {
	if p.Status != PageStatusText {
		return PlaceholderText
	}
	return p.Text
}

// PageView is one pagination step over the extracted pages.
type PageView struct {
	Number       int      `json:"number"`
	Items        []string `json:"items"`
	TotalPages   int      `json:"total_pages"`
	HasPrevious  bool     `json:"has_previous"`
	HasNext      bool     `json:"has_next"`
	PreviousPage int      `json:"previous_page,omitempty"`
	NextPage     int      `json:"next_page,omitempty"`
}

// PageExtractor extracts per-page text from a document on disk.
// Implementations return exactly one PageText per source page and wrap
// ErrUnreadableDocument when the file cannot be opened or parsed.
type PageExtractor interface {
	ExtractPages(path string) ([]PageText, error)
}

// UploadStore persists uploaded files and resolves stored references.
type UploadStore interface {
	Store(fileName string, content io.Reader) (string, error)
	CurrentPath(reference string) (string, bool)
}

// DocumentValidator checks that a stored file is a well-formed document.
type DocumentValidator interface {
	Validate(path string) error
}

// Upload is a file received with a read request.
type Upload struct {
	FileName string
	Content  io.Reader
}

// ReadRequest carries everything the reader needs for one request.
// Reference is the value previously recorded in the caller's session.
type ReadRequest struct {
	SessionID string
	Reference string
	Upload    *Upload
	Page      int
}

// ReadResult is the outcome of a read request. Reference is the value the
// caller should record in its session (unchanged when nothing was uploaded).
type ReadResult struct {
	View      PageView
	NumPages  int
	Pages     []PageText
	Reference string
}

// ReaderService drives the upload/extract/paginate flow for one request.
type ReaderService interface {
	Read(ctx context.Context, req ReadRequest) (*ReadResult, error)
}
