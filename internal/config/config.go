package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"learning-log/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	// PDFBackendFitz extracts text with MuPDF.
	PDFBackendFitz = "fitz"
	// PDFBackendNative extracts text with the pure Go parser.
	PDFBackendNative = "native"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string   `yaml:"server_port"`
	UploadPath      string   `yaml:"upload_path"`
	MaxFileSize     int64    `yaml:"max_file_size"`
	LogLevel        string   `yaml:"log_level"`
	SupabaseURL     string   `yaml:"supabase_url"`
	SupabaseKey     string   `yaml:"supabase_anon_key"`
	StorageBucket   string   `yaml:"supabase_storage_bucket"`
	SessionDBPath   string   `yaml:"session_db_path"`
	PDFBackend      string   `yaml:"pdf_backend"`
	ValidateUploads bool     `yaml:"validate_uploads"`
	AllowedOrigins  []string `yaml:"cors_allowed_origins"`
}

// defaultConfig holds the values used when neither the config file nor the
// environment provides one.
func defaultConfig() *AppConfig {
	return &AppConfig{
		ServerPort:    "8080",
		UploadPath:    "uploaded_pdfs",
		MaxFileSize:   50 * 1024 * 1024, // 50MB default
		LogLevel:      "info",
		SessionDBPath: "data/sessions.db",
		PDFBackend:    PDFBackendFitz,
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
	}
}

// NewConfig creates a new configuration instance. Values come from the
// defaults, then the YAML file named by CONFIG_FILE (if any), then the
// environment.
func NewConfig() domain.Config {
	cfg, err := LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		// A broken config file is reported on stderr; env and defaults still apply.
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		cfg = defaultConfig()
		cfg.applyEnv()
	}
	return cfg
}

// LoadConfig builds the configuration from an optional YAML file and the environment.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	// Cloud Run (and many PaaS) provide the listening port via PORT.
	// Keep SERVER_PORT for local/dev compatibility.
	c.ServerPort = getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", c.ServerPort))
	c.UploadPath = getEnvOrDefault("UPLOAD_PATH", c.UploadPath)
	c.MaxFileSize = getEnvInt64OrDefault("MAX_FILE_SIZE", c.MaxFileSize)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.SupabaseURL = getEnvOrDefault("SUPABASE_URL", c.SupabaseURL)
	c.SupabaseKey = getEnvOrDefault("SUPABASE_ANON_KEY", c.SupabaseKey)
	c.StorageBucket = getEnvOrDefault("SUPABASE_STORAGE_BUCKET", c.StorageBucket)
	c.SessionDBPath = getEnvOrDefault("SESSION_DB_PATH", c.SessionDBPath)
	c.PDFBackend = strings.ToLower(getEnvOrDefault("PDF_BACKEND", c.PDFBackend))
	c.ValidateUploads = getEnvBoolOrDefault("VALIDATE_UPLOADS", c.ValidateUploads)
	if origins := getEnvOrDefault("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the bucket uploads are mirrored to; empty disables mirroring
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// GetSessionDBPath returns the session database file path
func (c *AppConfig) GetSessionDBPath() string {
	return c.SessionDBPath
}

// GetPDFBackend returns the text extraction backend name
func (c *AppConfig) GetPDFBackend() string {
	return c.PDFBackend
}

// GetValidateUploads reports whether uploads are structurally validated
func (c *AppConfig) GetValidateUploads() bool {
	return c.ValidateUploads
}

// GetAllowedOrigins returns the CORS allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
