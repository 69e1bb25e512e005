package artifacts

import (
	"bytes"
	"context"
	"io"
	"strings"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

// Service implements the Store interface over a StorageBackend
type Service struct {
	backend       StorageBackend
	publicBaseURL string
}

// NewService creates a new artifact store
func NewService(backend StorageBackend, publicBaseURL string) Store {
	return &Service{
		backend:       backend,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload stores the data and returns its public URL
func (s *Service) Upload(ctx context.Context, data io.Reader, path string) (string, error) {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return "", apperrors.StorageError("upload", io.ErrUnexpectedEOF).
			WithDetail("reason", "empty artifact path")
	}

	if _, err := s.backend.Save(ctx, data, path); err != nil {
		return "", apperrors.StorageError("upload", err).WithDetail("path", path)
	}

	return s.publicBaseURL + "/" + path, nil
}

// UploadBytes stores a byte slice and returns its public URL
func (s *Service) UploadBytes(ctx context.Context, data []byte, path string) (string, error) {
	return s.Upload(ctx, bytes.NewReader(data), path)
}
