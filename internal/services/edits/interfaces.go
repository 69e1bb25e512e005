package edits

import (
	"context"

	"github.com/authorityshow/editor-api/internal/models"
)

// EditLog appends and reads the append-only edit history
type EditLog interface {
	// Append writes one edit record; records are never updated or deleted
	Append(ctx context.Context, record *models.EditRecord) error

	// History returns a user's edit records, newest first
	History(ctx context.Context, userID string, limit int) ([]models.EditRecord, error)
}

// Repository defines the persistence operations for edit records
type Repository interface {
	Create(ctx context.Context, record *models.EditRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.EditRecord, error)
}
