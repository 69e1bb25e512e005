package aicut

import (
	"context"
	"io"

	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/pkg/ffmpeg"
	"github.com/authorityshow/editor-api/pkg/transcript"
)

// CertaintyEntry is one scored transcript sentence with its time window
type CertaintyEntry struct {
	ID             int     `json:"id"`
	Sentence       string  `json:"sentence"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	CertaintyScore float64 `json:"certainty_score"`
	CertaintyLevel string  `json:"certainty_level"`
}

// SentenceClip is an individually addressable clip of one scored sentence
type SentenceClip struct {
	ID       int     `json:"id"`
	Sentence string  `json:"sentence"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	URL      string  `json:"url"`
}

// Pause is a silence gap between consecutive words
type Pause struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Analysis is the full result of analyzing one audio asset
type Analysis struct {
	Transcript       *transcript.Transcript `json:"-"`
	BackgroundNoise  *ffmpeg.LoudnessStats  `json:"background_noise,omitempty"`
	Sentiment        string                 `json:"sentiment,omitempty"`
	LongPauses       []Pause                `json:"long_pauses,omitempty"`
	CertaintyEntries []CertaintyEntry       `json:"certainty_entries"`
	SuggestedCuts    []CertaintyEntry       `json:"suggested_cuts"`
	SentenceClips    []SentenceClip         `json:"sentence_clips,omitempty"`
}

// TextAnalyzer is the text-provider surface the engine consumes
type TextAnalyzer interface {
	SentenceCertainty(ctx context.Context, transcript string) ([]textgen.SentenceCertainty, error)
	Sentiment(ctx context.Context, transcript string) (string, error)
}

// ClipExtractor extracts a time window of an audio file
type ClipExtractor interface {
	ExtractSegment(ctx context.Context, input string, start, end float64, output string) error
}

// LoudnessMeter measures volume statistics of an audio file
type LoudnessMeter interface {
	MeasureLoudness(ctx context.Context, input string) (*ffmpeg.LoudnessStats, error)
}

// ClipUploader stores extracted clips and returns shareable URLs
type ClipUploader interface {
	Upload(ctx context.Context, data io.Reader, path string) (string, error)
}
