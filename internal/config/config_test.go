package config

import (
	"os"
	"path/filepath"
	"testing"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "SERVER_PORT", "UPLOAD_PATH", "MAX_FILE_SIZE", "LOG_LEVEL",
		"SUPABASE_URL", "SUPABASE_ANON_KEY", "SUPABASE_STORAGE_BUCKET", "SESSION_DB_PATH",
		"PDF_BACKEND", "VALIDATE_UPLOADS", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetUploadPath() != "uploaded_pdfs" {
		t.Fatalf("expected default upload path uploaded_pdfs, got %s", cfg.GetUploadPath())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetSupabaseURL() != "" || cfg.GetSupabaseKey() != "" || cfg.GetStorageBucket() != "" {
		t.Fatalf("expected supabase settings to be empty by default")
	}
	if cfg.GetSessionDBPath() != "data/sessions.db" {
		t.Fatalf("expected default session db path, got %s", cfg.GetSessionDBPath())
	}
	if cfg.GetPDFBackend() != PDFBackendFitz {
		t.Fatalf("expected default backend fitz, got %s", cfg.GetPDFBackend())
	}
	if cfg.GetValidateUploads() {
		t.Fatalf("expected upload validation disabled by default")
	}
	if len(cfg.GetAllowedOrigins()) == 0 {
		t.Fatalf("expected default CORS origins")
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("UPLOAD_PATH", "/tmp/pdfs")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_ANON_KEY", "test-key")
	t.Setenv("SUPABASE_STORAGE_BUCKET", "pdfs")
	t.Setenv("SESSION_DB_PATH", "/tmp/s.db")
	t.Setenv("PDF_BACKEND", "NATIVE")
	t.Setenv("VALIDATE_UPLOADS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetUploadPath() != "/tmp/pdfs" {
		t.Fatalf("expected upload path /tmp/pdfs, got %s", cfg.GetUploadPath())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" {
		t.Fatalf("expected supabase url http://localhost:54321, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "test-key" {
		t.Fatalf("expected supabase key test-key, got %s", cfg.GetSupabaseKey())
	}
	if cfg.GetStorageBucket() != "pdfs" {
		t.Fatalf("expected bucket pdfs, got %s", cfg.GetStorageBucket())
	}
	if cfg.GetSessionDBPath() != "/tmp/s.db" {
		t.Fatalf("expected session db /tmp/s.db, got %s", cfg.GetSessionDBPath())
	}
	if cfg.GetPDFBackend() != PDFBackendNative {
		t.Fatalf("expected backend native, got %s", cfg.GetPDFBackend())
	}
	if !cfg.GetValidateUploads() {
		t.Fatalf("expected upload validation enabled")
	}
	origins := cfg.GetAllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", origins)
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("VALIDATE_UPLOADS", "maybe")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetValidateUploads() {
		t.Fatalf("expected invalid bool to fall back to false")
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server_port: "7000"
upload_path: /srv/pdfs
log_level: warn
pdf_backend: native
validate_uploads: true
cors_allowed_origins:
  - https://log.example
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ServerPort != "7000" {
		t.Errorf("expected port from file, got %s", cfg.ServerPort)
	}
	if cfg.UploadPath != "/srv/pdfs" {
		t.Errorf("expected upload path from file, got %s", cfg.UploadPath)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected env to win over file, got %s", cfg.LogLevel)
	}
	if cfg.PDFBackend != PDFBackendNative || !cfg.ValidateUploads {
		t.Errorf("expected backend and validation from file")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://log.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.MaxFileSize != defaultMaxFileSize {
		t.Errorf("expected default max file size to survive, got %d", cfg.MaxFileSize)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server_port: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for malformed file")
	}
}
