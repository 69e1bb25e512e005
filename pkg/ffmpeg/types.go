package ffmpeg

// AudioMetadata represents metadata extracted from an audio file
type AudioMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	SampleRate int     `json:"sample_rate"` // Sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
	Bitrate    int     `json:"bitrate"`     // Bitrate in bits per second
	Format     string  `json:"format"`      // Container format (mp3, m4a, etc.)
	Codec      string  `json:"codec"`       // Audio codec
	Size       int64   `json:"size"`        // File size in bytes
}

// LoudnessStats holds the volume statistics reported by the volumedetect filter
type LoudnessStats struct {
	MeanVolumeDB float64 `json:"mean_volume_db"`
	MaxVolumeDB  float64 `json:"max_volume_db"`
}

// Overlay describes one clip to be mixed on top of a base track
type Overlay struct {
	Path     string  // Path to the overlay audio file
	StartSec float64 // Offset into the base track where the overlay begins
	FadeSec  float64 // Symmetric fade-in/out duration
	Gain     float64 // Linear volume multiplier relative to the base track
}
