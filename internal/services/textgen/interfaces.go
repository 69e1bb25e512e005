package textgen

import "context"

// SentenceCertainty scores one transcript sentence for removability.
// Score is in [0,1]; higher means more likely filler.
type SentenceCertainty struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"certainty_score"`
}

// SfxPlanEntry is one planned sound-effect placement
type SfxPlanEntry struct {
	Description string  `json:"description"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
}

// Generator is the text-side provider surface the pipeline consumes
type Generator interface {
	CleanTranscript(ctx context.Context, transcript string) (string, error)
	ShowNotes(ctx context.Context, transcript string) (string, error)
	Suggestions(ctx context.Context, transcript string) (string, error)
	Quotes(ctx context.Context, transcript string) ([]string, error)
	IntroOutroScript(ctx context.Context, transcript string) (string, error)
	Translate(ctx context.Context, transcript, targetLanguage string) (string, error)
	Sentiment(ctx context.Context, transcript string) (string, error)
	BackgroundLookup(ctx context.Context, transcript string) (string, error)
	SentenceCertainty(ctx context.Context, transcript string) ([]SentenceCertainty, error)
	SfxPlan(ctx context.Context, transcript string, maxEntries int) ([]SfxPlanEntry, error)
}

// ImageGenerator produces shareable image URLs from prompts
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// SpeechGenerator synthesizes spoken audio from text
type SpeechGenerator interface {
	Synthesize(ctx context.Context, text string, voice string) ([]byte, error)
}
