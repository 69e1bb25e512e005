package pipeline

import (
	"context"

	"github.com/authorityshow/editor-api/internal/database"
	"github.com/authorityshow/editor-api/internal/models"
	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

// GormRunRecorder persists pipeline run rows
type GormRunRecorder struct {
	db *database.DB
}

func NewGormRunRecorder(db *database.DB) *GormRunRecorder {
	return &GormRunRecorder{db: db}
}

func (r *GormRunRecorder) Record(ctx context.Context, run *models.PipelineRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return apperrors.DatabaseError("create pipeline run", err)
	}
	return nil
}
