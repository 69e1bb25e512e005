package soundgen

import "context"

// Generator is the generative-audio provider surface: short sound effects,
// voice isolation, and instant voice cloning.
type Generator interface {
	// GenerateSound renders a textual description into a short audio clip.
	// Duration is clamped by the provider to its supported range.
	GenerateSound(ctx context.Context, description string, durationSec float64) ([]byte, error)

	// IsolateVoice strips background noise and music, leaving speech
	IsolateVoice(ctx context.Context, audio []byte) ([]byte, error)

	// CloneVoice creates a reusable voice from a speech sample and returns
	// its provider-side identifier
	CloneVoice(ctx context.Context, name string, sample []byte) (string, error)
}
