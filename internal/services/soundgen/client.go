package soundgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

// Sound effects shorter than 2s or longer than 10s tend to come back
// distorted, so requests are clamped to that window.
const (
	minSoundDuration = 2.0
	maxSoundDuration = 10.0
)

// Config holds configuration for the generative-audio client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client handles communication with the generative-audio API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new generative-audio API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// GenerateSound renders a description into a short audio clip
func (c *Client) GenerateSound(ctx context.Context, description string, durationSec float64) ([]byte, error) {
	if durationSec < minSoundDuration {
		durationSec = minSoundDuration
	}
	if durationSec > maxSoundDuration {
		durationSec = maxSoundDuration
	}

	payload, err := json.Marshal(map[string]interface{}{
		"text":             description,
		"duration_seconds": durationSec,
	})
	if err != nil {
		return nil, apperrors.ProviderError("sound_generation", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/sound-generation", bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.ProviderError("sound_generation", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	return c.doAudio(req, "sound_generation")
}

// IsolateVoice strips background noise and music from the audio
func (c *Client) IsolateVoice(ctx context.Context, audio []byte) ([]byte, error) {
	body, contentType, err := multipartFile("audio", "input.mp3", audio, nil)
	if err != nil {
		return nil, apperrors.ProviderError("voice_isolation", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/audio-isolation", body)
	if err != nil {
		return nil, apperrors.ProviderError("voice_isolation", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("xi-api-key", c.apiKey)

	return c.doAudio(req, "voice_isolation")
}

// CloneVoice creates a voice from a speech sample
func (c *Client) CloneVoice(ctx context.Context, name string, sample []byte) (string, error) {
	body, contentType, err := multipartFile("files", "sample.mp3", sample,
		map[string]string{"name": name})
	if err != nil {
		return "", apperrors.ProviderError("voice_clone", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/voices/add", body)
	if err != nil {
		return "", apperrors.ProviderError("voice_clone", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.ProviderError("voice_clone", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.ProviderError("voice_clone",
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, readErrorBody(resp.Body)))
	}

	var result struct {
		VoiceID string `json:"voice_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperrors.ProviderError("voice_clone", err)
	}
	if result.VoiceID == "" {
		return "", apperrors.ProviderError("voice_clone", fmt.Errorf("response missing voice_id"))
	}
	return result.VoiceID, nil
}

// doAudio executes the request and returns the raw audio body
func (c *Client) doAudio(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ProviderError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ProviderError(operation,
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, readErrorBody(resp.Body)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ProviderError(operation, err)
	}
	if len(audio) == 0 {
		return nil, apperrors.ProviderError(operation, fmt.Errorf("empty audio response"))
	}
	return audio, nil
}

// multipartFile builds a multipart body with one file part plus extra fields
func multipartFile(fieldName, fileName string, data []byte, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// readErrorBody reads a bounded amount of an error response for diagnostics
func readErrorBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(data)
}
