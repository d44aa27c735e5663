package config

import (
	"fmt"

	"learning-log/internal/domain"
	"learning-log/internal/repository"
	"learning-log/internal/service"
	"learning-log/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient
	SessionStore   domain.SessionStore

	TopicRepository domain.TopicRepository

	AuthService   domain.AuthService
	TopicService  domain.TopicService
	ReaderService domain.ReaderService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client. Without it the PDF reader still works
	// but every authenticated route answers 401.
	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Error("Supabase client not available", err)
	}

	sessionStore, err := repository.NewBoltSessionStore(config.GetSessionDBPath())
	if err != nil {
		return nil, err
	}

	extractor, err := service.NewPageExtractor(config.GetPDFBackend(), appLogger)
	if err != nil {
		sessionStore.Close()
		return nil, fmt.Errorf("failed to create page extractor: %w", err)
	}

	var validator domain.DocumentValidator
	if config.GetValidateUploads() {
		validator = service.NewPDFValidator()
	}

	var storage domain.StorageService
	if bucket := config.GetStorageBucket(); bucket != "" && config.GetSupabaseURL() != "" {
		storage = service.NewStorageService(config.GetSupabaseURL(), config.GetSupabaseKey(), bucket)
		appLogger.Info("Mirroring uploads to Supabase Storage", "bucket", bucket)
	}

	topicRepo := repository.NewTopicRepository(supabaseClient, appLogger)
	uploadStore := service.NewFileUploadStore(config.GetUploadPath(), appLogger)

	appLogger.Info("Container initialized",
		"pdf_backend", config.GetPDFBackend(),
		"upload_path", config.GetUploadPath(),
		"validate_uploads", config.GetValidateUploads(),
	)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		SupabaseClient:  supabaseClient,
		SessionStore:    sessionStore,
		TopicRepository: topicRepo,
		AuthService:     service.NewAuthService(supabaseClient, appLogger),
		TopicService:    service.NewTopicService(topicRepo, appLogger),
		ReaderService:   service.NewReaderService(uploadStore, extractor, validator, storage, appLogger),
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if s, ok := c.Logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return c.SessionStore.Close()
}
