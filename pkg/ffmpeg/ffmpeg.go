package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}
	return nil
}

// run executes ffmpeg with the given arguments, bounded by the configured timeout
func (f *FFmpeg) run(ctx context.Context, operation, file string, args []string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return NewProcessingError(operation, file, ErrProcessingTimeout, "")
		}
		return NewProcessingError(operation, file, err, truncateStderr(stderr.String()))
	}
	return nil
}

// ExtractSegment extracts [start,end) seconds from the input into output.
// The segment is re-encoded so that extracted pieces can be concatenated
// regardless of where the source keyframes fall.
func (f *FFmpeg) ExtractSegment(ctx context.Context, input string, start, end float64, output string) error {
	if end <= start {
		return NewProcessingError("segment_extraction", input,
			fmt.Errorf("invalid time range: start=%.3f, end=%.3f", start, end), "")
	}

	args := []string{
		"-ss", fmt.Sprintf("%.3f", start),
		"-i", input,
		"-t", fmt.Sprintf("%.3f", end-start),
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-vn",
		"-y",
		output,
	}
	return f.run(ctx, "segment_extraction", input, args)
}

// Concat joins the given audio files in order into output using the concat demuxer.
func (f *FFmpeg) Concat(ctx context.Context, inputs []string, output string) error {
	if len(inputs) == 0 {
		return NewProcessingError("concat", output, fmt.Errorf("no input files"), "")
	}

	// The concat demuxer reads its inputs from a list file
	listPath := output + ".list"
	var list strings.Builder
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return NewProcessingError("concat", in, err, "")
		}
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return NewProcessingError("concat", output, err, "")
	}
	defer os.Remove(listPath)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-y",
		output,
	}
	return f.run(ctx, "concat", output, args)
}

// MeasureLoudness runs the volumedetect filter and parses its statistics
func (f *FFmpeg) MeasureLoudness(ctx context.Context, input string) (*LoudnessStats, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-i", input,
		"-af", "volumedetect",
		"-f", "null",
		"-",
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("loudness_measurement", input, err, truncateStderr(stderr.String()))
	}

	return parseLoudness(stderr.String())
}

var (
	meanVolumeRe = regexp.MustCompile(`mean_volume:\s*(-?[\d.]+)\s*dB`)
	maxVolumeRe  = regexp.MustCompile(`max_volume:\s*(-?[\d.]+)\s*dB`)
)

func parseLoudness(stderr string) (*LoudnessStats, error) {
	stats := &LoudnessStats{}

	m := meanVolumeRe.FindStringSubmatch(stderr)
	if m == nil {
		return nil, fmt.Errorf("volumedetect output missing mean_volume")
	}
	mean, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing mean_volume: %w", err)
	}
	stats.MeanVolumeDB = mean

	if m := maxVolumeRe.FindStringSubmatch(stderr); m != nil {
		if max, err := strconv.ParseFloat(m[1], 64); err == nil {
			stats.MaxVolumeDB = max
		}
	}

	return stats, nil
}

// EnhanceVoice applies a denoise + high-pass + loudness-normalization chain
// tuned for spoken audio.
func (f *FFmpeg) EnhanceVoice(ctx context.Context, input, output string) error {
	args := []string{
		"-i", input,
		"-af", "highpass=f=80,afftdn=nf=-25,loudnorm=I=-16:TP=-1.5:LRA=11",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-y",
		output,
	}
	return f.run(ctx, "voice_enhancement", input, args)
}

// MixOverlays overlays each clip onto the base track at its start offset,
// with symmetric fades and per-overlay gain, and writes the mix to output.
// Overlay durations are probed so the fade-out lands at each clip's tail.
func (f *FFmpeg) MixOverlays(ctx context.Context, base string, overlays []Overlay, output string) error {
	if len(overlays) == 0 {
		return NewProcessingError("overlay_mix", base, fmt.Errorf("no overlays supplied"), "")
	}

	args := []string{"-i", base}
	for _, ov := range overlays {
		args = append(args, "-i", ov.Path)
	}

	var filter strings.Builder
	labels := make([]string, 0, len(overlays))
	for i, ov := range overlays {
		duration, err := f.Duration(ctx, ov.Path)
		if err != nil {
			return NewProcessingError("overlay_mix", ov.Path, err, "")
		}

		fade := ov.FadeSec
		if fade*2 > duration {
			fade = duration / 2
		}
		gain := ov.Gain
		if gain <= 0 {
			gain = 1.0
		}
		delayMs := int(ov.StartSec * 1000)

		label := fmt.Sprintf("ov%d", i)
		fmt.Fprintf(&filter,
			"[%d:a]afade=t=in:st=0:d=%.3f,afade=t=out:st=%.3f:d=%.3f,volume=%.3f,adelay=%d:all=1[%s];",
			i+1, fade, duration-fade, fade, gain, delayMs, label)
		labels = append(labels, "["+label+"]")
	}

	fmt.Fprintf(&filter, "[0:a]%samix=inputs=%d:duration=first:normalize=0[out]",
		strings.Join(labels, ""), len(overlays)+1)

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[out]",
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-y",
		output,
	)
	return f.run(ctx, "overlay_mix", base, args)
}

// truncateStderr keeps error messages readable; ffmpeg stderr can be enormous
func truncateStderr(s string) string {
	const max = 2048
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
