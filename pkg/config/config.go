package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		setDefaults()

		viper.SetEnvPrefix("PODEDIT")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// Missing config file is fine, defaults plus env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct.
// Init() must be called before using this.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	if viper.GetInt64("credits.initial_grant") < 0 {
		viper.Set("credits.initial_grant", 0)
	}

	return nil
}

// validateAPIKeys validates that API keys are not using placeholder values
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	openaiKey := viper.GetString("openai.api_key")
	for _, placeholder := range placeholders {
		if openaiKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid OpenAI API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: OpenAI API key is using a placeholder value")
			break
		}
	}

	soundgenKey := viper.GetString("soundgen.api_key")
	for _, placeholder := range placeholders {
		if soundgenKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid sound generation API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: sound generation API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Credits.InitialGrant < 0 {
		c.Credits.InitialGrant = 0
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", int64(512*1024*1024))

	// Database defaults
	viper.SetDefault("database.path", "./data/editor.db")
	viper.SetDefault("database.log_queries", false)

	// Processing defaults
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffmpeg_timeout", 10*time.Minute)
	viper.SetDefault("processing.temp_dir", os.TempDir()+"/podcast-editor")

	// OpenAI defaults
	viper.SetDefault("openai.transcription_model", "whisper-1")
	viper.SetDefault("openai.text_model", "gpt-4o")
	viper.SetDefault("openai.fallback_text_model", "gpt-4o-mini")
	viper.SetDefault("openai.image_model", "dall-e-3")
	viper.SetDefault("openai.speech_model", "tts-1")
	viper.SetDefault("openai.timeout", 5*time.Minute)

	// Sound generation defaults
	viper.SetDefault("soundgen.base_url", "https://api.elevenlabs.io/v1")
	viper.SetDefault("soundgen.timeout", 2*time.Minute)

	// Storage defaults
	viper.SetDefault("storage.base_path", "./data/artifacts")
	viper.SetDefault("storage.public_base_url", "http://localhost:8080/artifacts")
	viper.SetDefault("storage.max_temp_age", time.Hour)
	viper.SetDefault("storage.cleanup_interval", 15*time.Minute)

	// Credit defaults
	viper.SetDefault("credits.initial_grant", int64(1000))

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}
