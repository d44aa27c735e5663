package service

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"learning-log/internal/domain"
	"learning-log/internal/testutil"
)

func extractorBackends(t *testing.T) map[string]domain.PageExtractor {
	t.Helper()
	logger := NewMockLogger()
	return map[string]domain.PageExtractor{
		"fitz":   NewFitzExtractor(logger),
		"native": NewNativeExtractor(logger),
	}
}

func TestExtractPages_BlankMiddlePage(t *testing.T) {
	for name, extractor := range extractorBackends(t) {
		t.Run(name, func(t *testing.T) {
			path := testutil.WritePDF(t, t.TempDir(), "three.pdf", "Alpha", "", "Gamma")

			pages, err := extractor.ExtractPages(path)
			if err != nil {
				t.Fatalf("ExtractPages: %v", err)
			}
			if len(pages) != 3 {
				t.Fatalf("expected 3 pages, got %d", len(pages))
			}

			if pages[0].Status != domain.PageStatusText || !strings.Contains(pages[0].Text, "Alpha") {
				t.Errorf("unexpected page 1: %+v", pages[0])
			}
			if pages[1].Status == domain.PageStatusText {
				t.Errorf("expected page 2 to have no text, got %+v", pages[1])
			}
			if pages[1].Display() != domain.PlaceholderText {
				t.Errorf("expected placeholder for page 2, got %q", pages[1].Display())
			}
			if pages[2].Status != domain.PageStatusText || !strings.Contains(pages[2].Text, "Gamma") {
				t.Errorf("unexpected page 3: %+v", pages[2])
			}
			for i, p := range pages {
				if p.Number != i+1 {
					t.Errorf("expected page number %d, got %d", i+1, p.Number)
				}
			}

			view := Paginate(displayTexts(pages), 2, 1)
			if !reflect.DeepEqual(view.Items, []string{domain.PlaceholderText}) {
				t.Errorf("expected placeholder view, got %v", view.Items)
			}
			if view.TotalPages != 3 {
				t.Errorf("expected 3 total pages, got %d", view.TotalPages)
			}
		})
	}
}

func TestExtractPages_AllBlankKeepsPageCount(t *testing.T) {
	for name, extractor := range extractorBackends(t) {
		t.Run(name, func(t *testing.T) {
			path := testutil.WritePDF(t, t.TempDir(), "blank.pdf", "", "", "", "")

			pages, err := extractor.ExtractPages(path)
			if err != nil {
				t.Fatalf("ExtractPages: %v", err)
			}
			if len(pages) != 4 {
				t.Fatalf("expected 4 pages, got %d", len(pages))
			}
			for _, p := range pages {
				if p.Display() != domain.PlaceholderText {
					t.Errorf("page %d: expected placeholder, got %q", p.Number, p.Display())
				}
			}
		})
	}
}

func TestExtractPages_ZeroPages(t *testing.T) {
	for name, extractor := range extractorBackends(t) {
		t.Run(name, func(t *testing.T) {
			path := testutil.WritePDF(t, t.TempDir(), "empty.pdf")

			pages, err := extractor.ExtractPages(path)
			if err != nil {
				t.Fatalf("ExtractPages: %v", err)
			}
			if len(pages) != 0 {
				t.Fatalf("expected no pages, got %d", len(pages))
			}
		})
	}
}

func TestExtractPages_Idempotent(t *testing.T) {
	for name, extractor := range extractorBackends(t) {
		t.Run(name, func(t *testing.T) {
			path := testutil.WritePDF(t, t.TempDir(), "same.pdf", "Alpha", "Beta")

			first, err := extractor.ExtractPages(path)
			if err != nil {
				t.Fatalf("first ExtractPages: %v", err)
			}
			second, err := extractor.ExtractPages(path)
			if err != nil {
				t.Fatalf("second ExtractPages: %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("expected identical results:\n%+v\n%+v", first, second)
			}
		})
	}
}

func TestExtractPages_Unreadable(t *testing.T) {
	for name, extractor := range extractorBackends(t) {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			garbage := testutil.WriteFile(t, dir, "garbage.pdf", []byte("this is not a pdf at all"))

			if _, err := extractor.ExtractPages(garbage); !errors.Is(err, domain.ErrUnreadableDocument) {
				t.Errorf("expected ErrUnreadableDocument for garbage, got %v", err)
			}
			if _, err := extractor.ExtractPages(filepath.Join(dir, "missing.pdf")); !errors.Is(err, domain.ErrUnreadableDocument) {
				t.Errorf("expected ErrUnreadableDocument for missing file, got %v", err)
			}
		})
	}
}

func TestNewPageExtractor(t *testing.T) {
	logger := NewMockLogger()

	if e, err := NewPageExtractor("", logger); err != nil {
		t.Errorf("default backend: %v", err)
	} else if _, ok := e.(*FitzExtractor); !ok {
		t.Errorf("expected fitz as default, got %T", e)
	}
	if e, err := NewPageExtractor("NATIVE", logger); err != nil {
		t.Errorf("native backend: %v", err)
	} else if _, ok := e.(*NativeExtractor); !ok {
		t.Errorf("expected native extractor, got %T", e)
	}
	if _, err := NewPageExtractor("ocr", logger); err == nil {
		t.Errorf("expected error for unknown backend")
	}
}

func TestNewPageText(t *testing.T) {
	failed := newPageText(1, "ignored", errors.New("bad font"))
	if failed.Status != domain.PageStatusFailed || failed.Err == nil || failed.Text != "" {
		t.Errorf("unexpected failed page: %+v", failed)
	}

	empty := newPageText(2, " \n\t ", nil)
	if empty.Status != domain.PageStatusEmpty {
		t.Errorf("expected whitespace-only page to be empty, got %+v", empty)
	}

	text := newPageText(3, "  Hello\x00 world\r\n", nil)
	if text.Status != domain.PageStatusText || text.Text != "Hello world" {
		t.Errorf("unexpected text page: %+v", text)
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"keeps whitespace", "a\tb\nc", "a\tb\nc"},
		{"drops control chars", "a\x00b\x1fc\x7f", "abc"},
		{"normalizes crlf", "a\r\nb", "a\nb"},
		{"drops invalid utf8", "a\xffb", "ab"},
		{"keeps unicode", "café — ok", "café — ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeText(tt.in); got != tt.want {
				t.Errorf("sanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func displayTexts(pages []domain.PageText) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Display()
	}
	return out
}
