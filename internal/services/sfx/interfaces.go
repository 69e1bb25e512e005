package sfx

import (
	"context"

	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/pkg/ffmpeg"
)

// PlanSource proposes sound-effect placements for a transcript
type PlanSource interface {
	SfxPlan(ctx context.Context, transcript string, maxEntries int) ([]textgen.SfxPlanEntry, error)
}

// SoundRenderer turns a textual description into a short audio clip
type SoundRenderer interface {
	GenerateSound(ctx context.Context, description string, durationSec float64) ([]byte, error)
}

// OverlayMixer lays rendered clips over the base track
type OverlayMixer interface {
	MixOverlays(ctx context.Context, base string, overlays []ffmpeg.Overlay, output string) error
}
