package artifacts

import (
	"context"
	"io"
)

// Store uploads pipeline artifacts and returns shareable URLs. The final
// mixed audio and any per-step media (clips, sound effects, quote images,
// synthesized speech) all go through this interface.
type Store interface {
	// Upload stores the data under the given relative path and returns a
	// public URL for it
	Upload(ctx context.Context, data io.Reader, path string) (string, error)

	// UploadBytes is a convenience wrapper over Upload
	UploadBytes(ctx context.Context, data []byte, path string) (string, error)
}

// StorageBackend abstracts where artifact bytes physically live. Artifacts
// are permanent outputs, so the surface is write-only; scratch cleanup
// happens on the per-run temp directories instead.
type StorageBackend interface {
	// Save saves data under filename and returns the stored path
	Save(ctx context.Context, data io.Reader, filename string) (string, error)
}
