package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	openAIBaseURL      = "https://api.openai.com"
	openAIDefaultModel = "tts-1"
	openAIDefaultVoice = "nova"
	openAITimeout      = 30 * time.Second
	openAIMaxAudio     = 10 * 1024 * 1024
)

// OpenAI synthesizes speech through the OpenAI audio/speech endpoint.
// Availability is keyed on OPENAI_API_KEY being set.
type OpenAI struct {
	apiKey  string
	model   string
	voice   string
	baseURL string

	client  *http.Client
	limiter *rate.Limiter
}

// OpenAIConfig holds construction options. Zero values get sensible defaults.
type OpenAIConfig struct {
	APIKey string
	Model  string
	Voice  string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string

	// RequestsPerMinute bounds the request rate (defaults to 30).
	RequestsPerMinute int
}

// NewOpenAI creates the provider. A missing API key surfaces through
// Available, not here.
func NewOpenAI(config OpenAIConfig) *OpenAI {
	if config.Model == "" {
		config.Model = openAIDefaultModel
	}
	if config.Voice == "" {
		config.Voice = openAIDefaultVoice
	}
	if config.BaseURL == "" {
		config.BaseURL = openAIBaseURL
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 30
	}

	return &OpenAI{
		apiKey:  config.APIKey,
		model:   config.Model,
		voice:   config.Voice,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: openAITimeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1),
	}
}

// Name returns "openai".
func (o *OpenAI) Name() string { return "openai" }

// Available reports whether an API key is configured.
func (o *OpenAI) Available() error {
	if o.apiKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY not set", ErrUnavailable)
	}
	return nil
}

type openAIRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize requests MP3 audio for text.
func (o *OpenAI) Synthesize(ctx context.Context, text string) (Audio, error) {
	if text == "" {
		return Audio{}, ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, openAITimeout)
	defer cancel()

	if err := o.limiter.Wait(ctx); err != nil {
		return Audio{}, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	body, err := json.Marshal(openAIRequest{
		Model:          o.model,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return Audio{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return Audio{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return Audio{}, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Audio{}, fmt.Errorf("openai returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, openAIMaxAudio+1))
	if err != nil {
		return Audio{}, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(data) == 0 {
		return Audio{}, fmt.Errorf("openai returned no audio")
	}
	if len(data) > openAIMaxAudio {
		return Audio{}, fmt.Errorf("openai audio too large: over %d bytes", openAIMaxAudio)
	}

	return Audio{Data: data, Format: "mp3"}, nil
}

// Ensure OpenAI implements Provider.
var _ Provider = (*OpenAI)(nil)
