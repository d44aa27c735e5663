package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage mirrors uploads into a Supabase Storage bucket.
type SupabaseStorage struct {
	baseURL       string
	apiKey        string
	bucket        string
	storageClient *storage_go.Client
}

func NewStorageService(
	baseURL string,
	apiKey string,
	bucket string,
) *SupabaseStorage {
	baseURL = strings.TrimRight(baseURL, "/")
	return &SupabaseStorage{
		baseURL:       baseURL,
		apiKey:        apiKey,
		bucket:        bucket,
		storageClient: storage_go.NewClient(baseURL+"/storage/v1", apiKey, nil),
	}
}

// Upload writes file to path inside the bucket, replacing any existing object.
func (s *SupabaseStorage) Upload(
	ctx context.Context,
	path string,
	file io.Reader,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	contentType := "application/pdf"
	upsert := true
	_, err := s.storageClient.UploadFile(s.bucket, path, file, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}
	return nil
}
