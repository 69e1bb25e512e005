package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

// Config holds configuration for the OpenAI text/image/speech client
type Config struct {
	APIKey        string
	BaseURL       string
	TextModel     string
	FallbackModel string
	ImageModel    string
	SpeechModel   string
}

// Client implements Generator, ImageGenerator, and SpeechGenerator against
// the OpenAI API
type Client struct {
	client        openai.Client
	textModel     string
	fallbackModel string
	imageModel    string
	speechModel   string
}

// NewClient creates a new OpenAI-backed text generation client
func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:        openai.NewClient(opts...),
		textModel:     cfg.TextModel,
		fallbackModel: cfg.FallbackModel,
		imageModel:    cfg.ImageModel,
		speechModel:   cfg.SpeechModel,
	}
}

// complete runs a chat completion and returns the raw text of the first choice
func (c *Client) complete(ctx context.Context, model, system, user string, jsonOutput bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       shared.ChatModel(model),
		Temperature: openai.Float(0.4),
	}
	if jsonOutput {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", apperrors.ProviderError("text_generation", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.ProviderError("text_generation", errors.New("empty completion response"))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", apperrors.ProviderError("text_generation", errors.New("empty completion content"))
	}
	return content, nil
}

// completeJSON runs a JSON-mode completion and unmarshals the result
func (c *Client) completeJSON(ctx context.Context, model, system, user string, out interface{}) error {
	raw, err := c.complete(ctx, model, system, user, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return apperrors.ProviderError("text_generation", fmt.Errorf("malformed JSON response: %w", err))
	}
	return nil
}

// CleanTranscript removes filler and transcription noise
func (c *Client) CleanTranscript(ctx context.Context, transcript string) (string, error) {
	return c.complete(ctx, c.textModel, cleanTranscriptSystem, transcript, false)
}

// ShowNotes writes episode show notes
func (c *Client) ShowNotes(ctx context.Context, transcript string) (string, error) {
	return c.complete(ctx, c.textModel, showNotesSystem, transcript, false)
}

// Suggestions gives the host improvement suggestions
func (c *Client) Suggestions(ctx context.Context, transcript string) (string, error) {
	return c.complete(ctx, c.textModel, suggestionsSystem, transcript, false)
}

// Quotes extracts up to five shareable quotes
func (c *Client) Quotes(ctx context.Context, transcript string) ([]string, error) {
	var result struct {
		Quotes []string `json:"quotes"`
	}
	if err := c.completeJSON(ctx, c.textModel, quotesSystem, transcript, &result); err != nil {
		return nil, err
	}
	if len(result.Quotes) > 5 {
		result.Quotes = result.Quotes[:5]
	}
	return result.Quotes, nil
}

// IntroOutroScript writes a spoken intro and outro script
func (c *Client) IntroOutroScript(ctx context.Context, transcript string) (string, error) {
	return c.complete(ctx, c.textModel, introOutroSystem, transcript, false)
}

// Translate translates the transcript into the target language
func (c *Client) Translate(ctx context.Context, transcript, targetLanguage string) (string, error) {
	user := fmt.Sprintf("Target language: %s\n\nTranscript:\n%s", targetLanguage, transcript)
	return c.complete(ctx, c.textModel, translateSystem, user, false)
}

// Sentiment classifies the overall transcript sentiment
func (c *Client) Sentiment(ctx context.Context, transcript string) (string, error) {
	raw, err := c.complete(ctx, c.textModel, sentimentSystem, transcript, false)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(raw)), nil
}

// BackgroundLookup summarizes public background on entities in the transcript
func (c *Client) BackgroundLookup(ctx context.Context, transcript string) (string, error) {
	return c.complete(ctx, c.textModel, backgroundLookupSystem, transcript, false)
}

// SentenceCertainty scores every sentence for removability
func (c *Client) SentenceCertainty(ctx context.Context, transcript string) ([]SentenceCertainty, error) {
	var result struct {
		Sentences []SentenceCertainty `json:"sentences"`
	}
	if err := c.completeJSON(ctx, c.textModel, certaintySystem, transcript, &result); err != nil {
		return nil, err
	}

	for i := range result.Sentences {
		if result.Sentences[i].Score < 0 {
			result.Sentences[i].Score = 0
		}
		if result.Sentences[i].Score > 1 {
			result.Sentences[i].Score = 1
		}
	}
	return result.Sentences, nil
}

// SfxPlan asks for at most maxEntries sound-effect placements. The primary
// model is tried first; on failure the request is retried once against the
// fallback model.
func (c *Client) SfxPlan(ctx context.Context, transcript string, maxEntries int) ([]SfxPlanEntry, error) {
	system := fmt.Sprintf(sfxPlanSystem, maxEntries)

	var result struct {
		Effects []SfxPlanEntry `json:"effects"`
	}
	err := c.completeJSON(ctx, c.textModel, system, transcript, &result)
	if err != nil && c.fallbackModel != "" && c.fallbackModel != c.textModel {
		log.Printf("[WARN] sfx plan via %s failed, retrying with %s: %v", c.textModel, c.fallbackModel, err)
		err = c.completeJSON(ctx, c.fallbackModel, system, transcript, &result)
	}
	if err != nil {
		return nil, err
	}

	if len(result.Effects) > maxEntries {
		result.Effects = result.Effects[:maxEntries]
	}
	return result.Effects, nil
}

// GenerateImage renders a prompt into an image and returns its URL
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(c.imageModel),
		N:      openai.Int(1),
	})
	if err != nil {
		return "", apperrors.ProviderError("image_generation", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", apperrors.ProviderError("image_generation", errors.New("empty image response"))
	}
	return resp.Data[0].URL, nil
}

// Synthesize renders text into spoken audio bytes
func (c *Client) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	if voice == "" {
		voice = string(openai.AudioSpeechNewParamsVoiceAlloy)
	}

	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModel(c.speechModel),
		Input: text,
		Voice: openai.AudioSpeechNewParamsVoice(voice),
	})
	if err != nil {
		return nil, apperrors.ProviderError("speech_synthesis", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ProviderError("speech_synthesis", err)
	}
	return audio, nil
}
