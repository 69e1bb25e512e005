package transcriber

import (
	"context"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
	"github.com/authorityshow/editor-api/pkg/transcript"
)

// Config holds configuration for the OpenAI transcriber
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAITranscriber implements Transcriber against the Whisper API
type OpenAITranscriber struct {
	client openai.Client
	model  string
}

// NewOpenAITranscriber creates a new Whisper-backed transcriber
func NewOpenAITranscriber(cfg Config) *OpenAITranscriber {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}

	return &OpenAITranscriber{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// verboseTranscription mirrors the verbose_json response shape, which carries
// the word-level timestamps the pipeline needs
type verboseTranscription struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Words    []struct {
		Word  string  `json:"word"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"words"`
}

// Transcribe sends the audio file to Whisper and returns the transcript with
// word timestamps
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string, language string) (*transcript.Transcript, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, apperrors.ProviderError("transcription", err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	}
	if language != "" {
		params.Language = openai.String(language)
	}

	// The SDK's typed response drops the verbose fields, so capture the raw
	// body instead
	var verbose verboseTranscription
	_, err = t.client.Audio.Transcriptions.New(ctx, params, option.WithResponseBodyInto(&verbose))
	if err != nil {
		return nil, apperrors.ProviderError("transcription", err)
	}

	result := &transcript.Transcript{
		Text:     verbose.Text,
		Language: verbose.Language,
		Duration: verbose.Duration,
		Words:    make([]transcript.Word, 0, len(verbose.Words)),
	}
	for _, w := range verbose.Words {
		result.Words = append(result.Words, transcript.Word{
			Text:  w.Word,
			Start: w.Start,
			End:   w.End,
		})
	}

	return result, nil
}
