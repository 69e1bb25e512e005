package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Processing  ProcessingConfig `mapstructure:"processing"`
	OpenAI      OpenAIConfig     `mapstructure:"openai"`
	SoundGen    SoundGenConfig   `mapstructure:"soundgen"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Credits     CreditsConfig    `mapstructure:"credits"`
	Logging     LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// ProcessingConfig contains audio processing settings
type ProcessingConfig struct {
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	FFmpegTimeout time.Duration `mapstructure:"ffmpeg_timeout"`
	TempDir       string        `mapstructure:"temp_dir"`
}

// OpenAIConfig contains settings for the transcription / text / image /
// speech provider.
type OpenAIConfig struct {
	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	TranscriptionModel string        `mapstructure:"transcription_model"`
	TextModel          string        `mapstructure:"text_model"`
	FallbackTextModel  string        `mapstructure:"fallback_text_model"`
	ImageModel         string        `mapstructure:"image_model"`
	SpeechModel        string        `mapstructure:"speech_model"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// SoundGenConfig contains settings for the generative-audio provider
type SoundGenConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig contains artifact storage settings
type StorageConfig struct {
	BasePath        string        `mapstructure:"base_path"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	MaxTempAge      time.Duration `mapstructure:"max_temp_age"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CreditsConfig contains credit ledger settings
type CreditsConfig struct {
	InitialGrant int64 `mapstructure:"initial_grant"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
