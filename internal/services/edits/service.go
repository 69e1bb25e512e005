package edits

import (
	"context"
	"errors"

	"github.com/authorityshow/editor-api/internal/models"
)

// Service implements the EditLog interface
type Service struct {
	repo Repository
}

// NewService creates a new edit log service
func NewService(repo Repository) EditLog {
	return &Service{repo: repo}
}

// Append writes one edit record
func (s *Service) Append(ctx context.Context, record *models.EditRecord) error {
	if record == nil {
		return errors.New("edit record cannot be nil")
	}
	if record.UserID == "" || record.EpisodeID == "" {
		return errors.New("edit record requires user and episode references")
	}
	if record.EditType == "" {
		return errors.New("edit record requires an edit type")
	}
	return s.repo.Create(ctx, record)
}

// History returns a user's edit records, newest first
func (s *Service) History(ctx context.Context, userID string, limit int) ([]models.EditRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
