package segments

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
	"github.com/authorityshow/editor-api/pkg/ffmpeg"
)

// Extractor applies a keep-list of intervals to an audio file: the merged
// intervals are extracted in time order and concatenated; everything outside
// them is discarded.
type Extractor interface {
	Apply(ctx context.Context, inputPath string, intervals []Interval, outputPath string) error
}

// FFmpegExtractor implements Extractor using ffmpeg
type FFmpegExtractor struct {
	ff *ffmpeg.FFmpeg
}

// NewFFmpegExtractor creates a new ffmpeg-backed extractor
func NewFFmpegExtractor(ff *ffmpeg.FFmpeg) *FFmpegExtractor {
	return &FFmpegExtractor{ff: ff}
}

// Apply validates and merges the intervals, extracts each merged interval
// from the input, and concatenates the pieces into outputPath.
func (e *FFmpegExtractor) Apply(ctx context.Context, inputPath string, intervals []Interval, outputPath string) error {
	if err := ValidateAll(intervals); err != nil {
		return apperrors.ValidationError("cuts", err.Error())
	}

	merged := Merge(intervals)

	// Piece files live next to the output so the caller's scoped temp dir
	// owns their cleanup too
	workDir := filepath.Dir(outputPath)
	pieces := make([]string, 0, len(merged))
	defer func() {
		for _, p := range pieces {
			os.Remove(p)
		}
	}()

	for i, iv := range merged {
		piece := filepath.Join(workDir, fmt.Sprintf("keep_%03d.mp3", i))
		if err := e.ff.ExtractSegment(ctx, inputPath, iv.Start, iv.End, piece); err != nil {
			return err
		}
		pieces = append(pieces, piece)
	}

	if len(merged) == 1 {
		return os.Rename(pieces[0], outputPath)
	}
	return e.ff.Concat(ctx, pieces, outputPath)
}
