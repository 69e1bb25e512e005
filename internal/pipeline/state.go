package pipeline

import (
	"github.com/authorityshow/editor-api/internal/services/aicut"
	"github.com/authorityshow/editor-api/internal/services/segments"
	"github.com/authorityshow/editor-api/internal/services/sfx"
	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/pkg/transcript"
)

// State is the artifact accumulator for one orchestrator run. It is owned
// exclusively by that run and mutated only by the step currently executing;
// field presence encodes which steps already ran. Steps that replace the
// working audio write a new file in WorkDir and update AudioPath.
type State struct {
	WorkDir        string
	AudioPath      string
	ArtifactPrefix string

	UserID         string
	EpisodeID      string
	TargetLanguage string
	VoiceID        string
	ManualCuts     []segments.Interval

	StepsApplied []string

	Transcript         *transcript.Transcript
	TranslatedText     string
	CleanTranscript    string
	ShowNotes          string
	Suggestions        string
	Quotes             []string
	QuoteImageURLs     []string
	Osint              string
	IntroOutroScript   string
	IntroOutroAudioURL string
	TranslatedClipURL  string
	Analysis           *aicut.Analysis
	SfxPlan            []textgen.SfxPlanEntry
	SfxClips           []sfx.Clip
}

// transcriptText returns the working transcript text, or "" if no
// transcript-producing step has run yet
func (s *State) transcriptText() string {
	if s.Transcript == nil {
		return ""
	}
	return s.Transcript.Text
}
