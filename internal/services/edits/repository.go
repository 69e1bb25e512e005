package edits

import (
	"context"

	"github.com/authorityshow/editor-api/internal/database"
	"github.com/authorityshow/editor-api/internal/models"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *database.DB
}

// NewRepository creates a new edit record repository
func NewRepository(db *database.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create appends a new edit record
func (r *GormRepository) Create(ctx context.Context, record *models.EditRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByUser returns a user's edit records, newest first
func (r *GormRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.EditRecord, error) {
	var records []models.EditRecord
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}
