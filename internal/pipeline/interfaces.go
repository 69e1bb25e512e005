package pipeline

import (
	"context"

	"github.com/authorityshow/editor-api/internal/models"
	"github.com/authorityshow/editor-api/internal/services/aicut"
	"github.com/authorityshow/editor-api/internal/services/sfx"
	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/pkg/transcript"
)

// CutAnalyzer is the AI-cut engine surface the analyze and ai_cut steps
// consume
type CutAnalyzer interface {
	Analyze(ctx context.Context, audioPath string, existing *transcript.Transcript) (*aicut.Analysis, error)
	AnalyzeAndCut(ctx context.Context, audioPath, workDir, artifactPrefix string, existing *transcript.Transcript) (*aicut.Analysis, error)
}

// SfxPlanner proposes sound-effect placements from the sentence-level
// timings of the working transcript
type SfxPlanner interface {
	Plan(ctx context.Context, tr *transcript.Transcript, audioDuration float64) []textgen.SfxPlanEntry
}

// SfxMixer realizes a plan and overlays the clips onto the working audio
type SfxMixer interface {
	Apply(ctx context.Context, inputPath string, plan []textgen.SfxPlanEntry, workDir, artifactPrefix, outputPath string) ([]sfx.Clip, error)
}

// VoiceEnhancer applies the denoise and loudness-normalization filter chain
type VoiceEnhancer interface {
	EnhanceVoice(ctx context.Context, input, output string) error
}

// RunRecorder persists one row per finished orchestrator run
type RunRecorder interface {
	Record(ctx context.Context, run *models.PipelineRun) error
}
