package transcriber

import (
	"context"

	"github.com/authorityshow/editor-api/pkg/transcript"
)

// Transcriber converts audio into a transcript with word-level timestamps
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, language string) (*transcript.Transcript, error)
}
