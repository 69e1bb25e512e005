package types

import (
	"context"

	"github.com/authorityshow/editor-api/internal/database"
	"github.com/authorityshow/editor-api/internal/pipeline"
	"github.com/authorityshow/editor-api/internal/services/credits"
	"github.com/authorityshow/editor-api/internal/services/edits"
)

// PipelineRunner executes one pipeline request and returns the report plus
// the HTTP status to serve it with
type PipelineRunner interface {
	Run(ctx context.Context, req *pipeline.Request) (*pipeline.Report, int)
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB       *database.DB
	Pipeline PipelineRunner
	Credits  credits.Ledger
	Edits    edits.EditLog
}
