package pipeline

import (
	"context"
	"sort"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

// Step identifiers. The order of this list is the canonical execution
// order: requested steps always run in this sequence regardless of the
// order the caller supplied them in.
const (
	StepTranscribe       = "transcribe"
	StepTranslate        = "translate"
	StepVoiceClone       = "voice_clone"
	StepSynthesizeClip   = "synthesize_clip"
	StepIsolateVoice     = "isolate_voice"
	StepEnhance          = "enhance"
	StepAnalyze          = "analyze"
	StepAICut            = "ai_cut"
	StepCleanTranscript  = "clean_transcript"
	StepShowNotes        = "show_notes"
	StepSuggestions      = "suggestions"
	StepQuotes           = "quotes"
	StepQuoteImages      = "quote_images"
	StepBackgroundLookup = "background_lookup"
	StepIntroOutroScript = "intro_outro_script"
	StepIntroOutroSpeech = "intro_outro_speech"
	StepManualCut        = "manual_cut"
	StepPlanAndMixSfx    = "plan_and_mix_sfx"
)

var canonicalOrder = []string{
	StepTranscribe,
	StepTranslate,
	StepVoiceClone,
	StepSynthesizeClip,
	StepIsolateVoice,
	StepEnhance,
	StepAnalyze,
	StepAICut,
	StepCleanTranscript,
	StepShowNotes,
	StepSuggestions,
	StepQuotes,
	StepQuoteImages,
	StepBackgroundLookup,
	StepIntroOutroScript,
	StepIntroOutroSpeech,
	StepManualCut,
	StepPlanAndMixSfx,
}

// ChargePolicy selects when a step's meter is debited
type ChargePolicy int

const (
	// PreCharge debits immediately before the step body runs; used for
	// steps that always attempt real work once started
	PreCharge ChargePolicy = iota

	// PostCharge debits only after the step body returns successfully;
	// used for generative steps whose cost should not be borne on failure
	PostCharge
)

// Step is one named unit of pipeline work. Preconditions checks the state
// for required prior artifacts; Run reads and mutates only the state fields
// the step owns.
type Step struct {
	Name          string
	Meter         string
	Policy        ChargePolicy
	Preconditions func(s *State) error
	Run           func(ctx context.Context, s *State) error
}

// Registry is the dispatch table mapping step identifiers to handlers
type Registry struct {
	steps map[string]*Step
	rank  map[string]int
}

func newRegistry(steps []*Step) *Registry {
	r := &Registry{
		steps: make(map[string]*Step, len(steps)),
		rank:  make(map[string]int, len(canonicalOrder)),
	}
	for i, name := range canonicalOrder {
		r.rank[name] = i
	}
	for _, s := range steps {
		r.steps[s.Name] = s
	}
	return r
}

// Resolve validates the requested step names and returns the corresponding
// handlers in canonical order, deduplicated. An unknown name rejects the
// whole set.
func (r *Registry) Resolve(names []string) ([]*Step, error) {
	seen := make(map[string]bool, len(names))
	var resolved []*Step
	for _, name := range names {
		step, ok := r.steps[name]
		if !ok {
			return nil, apperrors.ValidationError("steps", "unknown step '"+name+"'")
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		resolved = append(resolved, step)
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return r.rank[resolved[i].Name] < r.rank[resolved[j].Name]
	})
	return resolved, nil
}
