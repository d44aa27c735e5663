package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"learning-log/internal/domain"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// NewPageExtractor returns the extractor for the named backend.
func NewPageExtractor(backend string, logger domain.Logger) (domain.PageExtractor, error) {
	switch strings.ToLower(backend) {
	case "", "fitz":
		return NewFitzExtractor(logger), nil
	case "native":
		return NewNativeExtractor(logger), nil
	default:
		return nil, fmt.Errorf("unknown pdf backend %q", backend)
	}
}

// FitzExtractor extracts page text with MuPDF.
type FitzExtractor struct {
	logger domain.Logger
}

// NewFitzExtractor creates a MuPDF backed extractor.
func NewFitzExtractor(logger domain.Logger) *FitzExtractor {
	return &FitzExtractor{logger: logger}
}

// ExtractPages returns one PageText per page of the PDF at path.
func (e *FitzExtractor) ExtractPages(path string) ([]domain.PageText, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrUnreadableDocument, path, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]domain.PageText, 0, numPages)
	for idx := 0; idx < numPages; idx++ {
		e.logger.Debug("PDF processing page", "page", idx+1, "total", numPages)
		text, err := doc.Text(idx)
		pages = append(pages, newPageText(idx+1, text, err))
	}
	return pages, nil
}

// NativeExtractor extracts page text with a pure Go PDF reader.
type NativeExtractor struct {
	logger domain.Logger
}

// NewNativeExtractor creates a pure Go extractor.
func NewNativeExtractor(logger domain.Logger) *NativeExtractor {
	return &NativeExtractor{logger: logger}
}

// ExtractPages returns one PageText per page of the PDF at path.
func (e *NativeExtractor) ExtractPages(path string) (pages []domain.PageText, err error) {
	// The parser panics on some malformed structures.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: parse %s: %v", domain.ErrUnreadableDocument, path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrUnreadableDocument, path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages = make([]domain.PageText, 0, numPages)
	for num := 1; num <= numPages; num++ {
		e.logger.Debug("PDF processing page", "page", num, "total", numPages)
		text, err := nativePageText(reader, num)
		pages = append(pages, newPageText(num, text, err))
	}
	return pages, nil
}

func nativePageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page %d: %v", num, r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", errors.New("page object missing")
	}
	return page.GetPlainText(nil)
}

// newPageText classifies the raw extraction result of one page.
func newPageText(num int, text string, err error) domain.PageText {
	if err != nil {
		return domain.PageText{Number: num, Status: domain.PageStatusFailed, Err: err}
	}
	text = strings.TrimSpace(sanitizeText(text))
	if text == "" {
		return domain.PageText{Number: num, Status: domain.PageStatusEmpty}
	}
	return domain.PageText{Number: num, Text: text, Status: domain.PageStatusText}
}

// sanitizeText removes control characters (other than tab and line breaks)
// and invalid UTF-8 so the text can be JSON encoded safely.
func sanitizeText(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
