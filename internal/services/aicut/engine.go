package aicut

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/authorityshow/editor-api/internal/services/transcriber"
	"github.com/authorityshow/editor-api/pkg/transcript"
)

// longPauseThreshold is the word gap, in seconds, reported as a long pause
const longPauseThreshold = 2.0

// Engine orchestrates transcription, certainty scoring, and per-sentence
// clip extraction into a reviewable cut analysis.
type Engine struct {
	transcriber transcriber.Transcriber
	analyzer    TextAnalyzer
	extractor   ClipExtractor
	meter       LoudnessMeter
	uploader    ClipUploader
}

// NewEngine creates a new AI-cut engine
func NewEngine(t transcriber.Transcriber, analyzer TextAnalyzer, extractor ClipExtractor, meter LoudnessMeter, uploader ClipUploader) *Engine {
	return &Engine{
		transcriber: t,
		analyzer:    analyzer,
		extractor:   extractor,
		meter:       meter,
		uploader:    uploader,
	}
}

// AnalyzeAndCut produces the full analysis for one audio file. An existing
// transcript can be passed to skip re-transcription; pass nil to transcribe
// here. workDir must be a writable scratch directory owned by the caller;
// artifactPrefix namespaces uploaded clip paths.
//
// Individual sentence alignment or extraction failures are logged and
// omitted; they never fail the analysis.
func (e *Engine) AnalyzeAndCut(ctx context.Context, audioPath, workDir, artifactPrefix string, existing *transcript.Transcript) (*Analysis, error) {
	analysis, err := e.Analyze(ctx, audioPath, existing)
	if err != nil {
		return nil, err
	}
	tr := analysis.Transcript

	scores, err := e.analyzer.SentenceCertainty(ctx, tr.Text)
	if err != nil {
		return nil, err
	}

	for i, s := range scores {
		start, end := transcript.AlignSentence(s.Sentence, tr.Words)
		entry := CertaintyEntry{
			ID:             i,
			Sentence:       s.Sentence,
			Start:          start,
			End:            end,
			CertaintyScore: s.Score,
			CertaintyLevel: BandFor(s.Score),
		}
		analysis.CertaintyEntries = append(analysis.CertaintyEntries, entry)

		if s.Score >= SuggestionThreshold {
			analysis.SuggestedCuts = append(analysis.SuggestedCuts, entry)
		}

		if s.Score > 0 {
			if clip, ok := e.extractSentenceClip(ctx, audioPath, workDir, artifactPrefix, entry); ok {
				analysis.SentenceClips = append(analysis.SentenceClips, clip)
			}
		}
	}

	return analysis, nil
}

// Analyze produces the transcript-level analysis without certainty scoring
// or clip extraction: background noise stats, sentiment, and long pauses.
// Noise and sentiment are best-effort; a failure there leaves the field
// empty rather than failing the analysis.
func (e *Engine) Analyze(ctx context.Context, audioPath string, existing *transcript.Transcript) (*Analysis, error) {
	tr := existing
	if tr == nil {
		var err error
		tr, err = e.transcriber.Transcribe(ctx, audioPath, "")
		if err != nil {
			return nil, err
		}
	}

	analysis := &Analysis{Transcript: tr}

	if stats, err := e.meter.MeasureLoudness(ctx, audioPath); err != nil {
		log.Printf("[WARN] background noise measurement failed: %v", err)
	} else {
		analysis.BackgroundNoise = stats
	}

	if sentiment, err := e.analyzer.Sentiment(ctx, tr.Text); err != nil {
		log.Printf("[WARN] sentiment analysis failed: %v", err)
	} else {
		analysis.Sentiment = sentiment
	}

	analysis.LongPauses = findLongPauses(tr.Words)
	return analysis, nil
}

// extractSentenceClip extracts and uploads one sentence's window. Failures
// are logged and reported as a skip, never as an error.
func (e *Engine) extractSentenceClip(ctx context.Context, audioPath, workDir, artifactPrefix string, entry CertaintyEntry) (SentenceClip, bool) {
	if entry.End <= entry.Start {
		log.Printf("[WARN] skipping clip for sentence %d: empty aligned window", entry.ID)
		return SentenceClip{}, false
	}

	clipPath := filepath.Join(workDir, fmt.Sprintf("sentence_%03d.mp3", entry.ID))
	if err := e.extractor.ExtractSegment(ctx, audioPath, entry.Start, entry.End, clipPath); err != nil {
		log.Printf("[WARN] skipping clip for sentence %d: extraction failed: %v", entry.ID, err)
		return SentenceClip{}, false
	}
	defer os.Remove(clipPath)

	file, err := os.Open(clipPath)
	if err != nil {
		log.Printf("[WARN] skipping clip for sentence %d: %v", entry.ID, err)
		return SentenceClip{}, false
	}
	defer file.Close()

	url, err := e.uploader.Upload(ctx, file, fmt.Sprintf("%s/clips/sentence_%03d.mp3", artifactPrefix, entry.ID))
	if err != nil {
		log.Printf("[WARN] skipping clip for sentence %d: upload failed: %v", entry.ID, err)
		return SentenceClip{}, false
	}

	return SentenceClip{
		ID:       entry.ID,
		Sentence: entry.Sentence,
		Start:    entry.Start,
		End:      entry.End,
		URL:      url,
	}, true
}

// findLongPauses reports gaps between consecutive words above the threshold
func findLongPauses(words []transcript.Word) []Pause {
	var pauses []Pause
	for i := 1; i < len(words); i++ {
		gap := words[i].Start - words[i-1].End
		if gap > longPauseThreshold {
			pauses = append(pauses, Pause{Start: words[i-1].End, End: words[i].Start})
		}
	}
	return pauses
}
