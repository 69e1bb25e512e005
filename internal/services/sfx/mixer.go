package sfx

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/pkg/ffmpeg"
)

const (
	minClipDuration = 2.0
	maxClipDuration = 10.0

	// Overlay shaping: short symmetric fades and a gain that keeps effects
	// under the spoken track
	fadeDuration = 0.3
	overlayGain  = 0.35
)

// Clip is one realized, uploaded sound effect
type Clip struct {
	Description string  `json:"description"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	URL         string  `json:"url"`
}

// ClipUploader stores realized clips and returns shareable URLs
type ClipUploader interface {
	UploadBytes(ctx context.Context, data []byte, path string) (string, error)
}

// Mixer renders planned effects and lays them over the base track
type Mixer struct {
	renderer SoundRenderer
	mixer    OverlayMixer
	uploader ClipUploader
}

func NewMixer(renderer SoundRenderer, mixer OverlayMixer, uploader ClipUploader) *Mixer {
	return &Mixer{renderer: renderer, mixer: mixer, uploader: uploader}
}

// Apply renders each plan entry, uploads the successful ones, and mixes them
// into inputPath, writing the result to outputPath. Per-entry rendering or
// upload failures are logged and skipped. When no clip could be realized
// (including an empty plan) the output is a byte-for-byte copy of the input.
func (m *Mixer) Apply(ctx context.Context, inputPath string, plan []textgen.SfxPlanEntry, workDir, artifactPrefix, outputPath string) ([]Clip, error) {
	var clips []Clip
	var overlays []ffmpeg.Overlay
	for i, entry := range plan {
		duration := clampDuration(entry.End - entry.Start)

		audio, err := m.renderer.GenerateSound(ctx, entry.Description, duration)
		if err != nil {
			log.Printf("[WARN] skipping sfx %d (%q): generation failed: %v", i, entry.Description, err)
			continue
		}

		clipPath := filepath.Join(workDir, fmt.Sprintf("sfx_%03d.mp3", i))
		if err := os.WriteFile(clipPath, audio, 0644); err != nil {
			log.Printf("[WARN] skipping sfx %d (%q): %v", i, entry.Description, err)
			continue
		}

		url, err := m.uploader.UploadBytes(ctx, audio, fmt.Sprintf("%s/sfx_%03d.mp3", artifactPrefix, i))
		if err != nil {
			log.Printf("[WARN] skipping sfx %d (%q): upload failed: %v", i, entry.Description, err)
			continue
		}

		clips = append(clips, Clip{
			Description: entry.Description,
			Start:       entry.Start,
			End:         entry.End,
			URL:         url,
		})
		overlays = append(overlays, ffmpeg.Overlay{
			Path:     clipPath,
			StartSec: entry.Start,
			FadeSec:  fadeDuration,
			Gain:     overlayGain,
		})
	}

	if len(overlays) == 0 {
		if err := copyFile(inputPath, outputPath); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := m.mixer.MixOverlays(ctx, inputPath, overlays, outputPath); err != nil {
		return nil, err
	}
	return clips, nil
}

func clampDuration(d float64) float64 {
	if d < minClipDuration {
		return minClipDuration
	}
	if d > maxClipDuration {
		return maxClipDuration
	}
	return d
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
