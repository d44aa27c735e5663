package domain

import (
	"context"
	"io"
)

// StorageService mirrors stored uploads to remote object storage.
type StorageService interface {
	Upload(ctx context.Context, path string, file io.Reader) error
}
