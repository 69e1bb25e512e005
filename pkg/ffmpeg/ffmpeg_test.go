package ffmpeg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoudness(t *testing.T) {
	stderr := `
[Parsed_volumedetect_0 @ 0x7f9e4b704f40] n_samples: 4410000
[Parsed_volumedetect_0 @ 0x7f9e4b704f40] mean_volume: -23.4 dB
[Parsed_volumedetect_0 @ 0x7f9e4b704f40] max_volume: -5.1 dB
`
	stats, err := parseLoudness(stderr)
	require.NoError(t, err)
	assert.InDelta(t, -23.4, stats.MeanVolumeDB, 0.001)
	assert.InDelta(t, -5.1, stats.MaxVolumeDB, 0.001)
}

func TestParseLoudnessMissingMean(t *testing.T) {
	_, err := parseLoudness("no volume info here")
	assert.Error(t, err)
}

func TestParseMetadata(t *testing.T) {
	output := &ffprobeOutput{}
	output.Format.Duration = "123.45"
	output.Format.Size = "1000000"
	output.Format.Bitrate = "128000"
	output.Format.FormatName = "mp3"
	output.Streams = []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Duration   string `json:"duration"`
	}{
		{CodecType: "audio", CodecName: "mp3", SampleRate: "44100", Channels: 2},
	}

	metadata, err := parseMetadata(output, "test.mp3")
	require.NoError(t, err)
	assert.InDelta(t, 123.45, metadata.Duration, 0.001)
	assert.Equal(t, 44100, metadata.SampleRate)
	assert.Equal(t, 2, metadata.Channels)
	assert.Equal(t, "mp3", metadata.Codec)
}

func TestParseMetadataNoDuration(t *testing.T) {
	output := &ffprobeOutput{}
	_, err := parseMetadata(output, "test.mp3")
	assert.Error(t, err)
}

func TestExtractSegmentRejectsInvalidRange(t *testing.T) {
	f := New("ffmpeg", "ffprobe", 0)
	err := f.ExtractSegment(context.Background(), "in.mp3", 5, 2, "out.mp3")
	assert.Error(t, err)
}
