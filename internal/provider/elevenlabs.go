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
	elevenLabsBaseURL = "https://api.elevenlabs.io"

	// Rachel, the ElevenLabs default voice.
	elevenLabsDefaultVoice = "21m00Tcm4TlvDq8ikWAM"

	elevenLabsDefaultModel = "eleven_turbo_v2_5"

	elevenLabsTimeout = 30 * time.Second

	// Max response size. Notification phrases are seconds long; anything
	// bigger than this is a malfunction.
	elevenLabsMaxAudio = 10 * 1024 * 1024
)

// ElevenLabs synthesizes speech through the ElevenLabs HTTP API.
// Availability is keyed on ELEVENLABS_API_KEY being set.
type ElevenLabs struct {
	apiKey  string
	voiceID string
	modelID string
	baseURL string

	client  *http.Client
	limiter *rate.Limiter
}

// ElevenLabsConfig holds construction options. Zero values get sensible
// defaults.
type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string
	ModelID string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string

	// RequestsPerMinute bounds the request rate (defaults to 30).
	RequestsPerMinute int
}

// NewElevenLabs creates the provider. A missing API key is not an error
// here; it surfaces through Available.
func NewElevenLabs(config ElevenLabsConfig) *ElevenLabs {
	if config.VoiceID == "" {
		config.VoiceID = elevenLabsDefaultVoice
	}
	if config.ModelID == "" {
		config.ModelID = elevenLabsDefaultModel
	}
	if config.BaseURL == "" {
		config.BaseURL = elevenLabsBaseURL
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 30
	}

	return &ElevenLabs{
		apiKey:  config.APIKey,
		voiceID: config.VoiceID,
		modelID: config.ModelID,
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: elevenLabsTimeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1),
	}
}

// Name returns "elevenlabs".
func (e *ElevenLabs) Name() string { return "elevenlabs" }

// Available reports whether an API key is configured.
func (e *ElevenLabs) Available() error {
	if e.apiKey == "" {
		return fmt.Errorf("%w: ELEVENLABS_API_KEY not set", ErrUnavailable)
	}
	return nil
}

type elevenLabsRequest struct {
	Text          string                `json:"text"`
	ModelID       string                `json:"model_id"`
	VoiceSettings elevenLabsVoiceTuning `json:"voice_settings"`
}

type elevenLabsVoiceTuning struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize requests MP3 audio for text.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) (Audio, error) {
	if text == "" {
		return Audio{}, ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, elevenLabsTimeout)
	defer cancel()

	if err := e.limiter.Wait(ctx); err != nil {
		return Audio{}, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	body, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: e.modelID,
		VoiceSettings: elevenLabsVoiceTuning{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return Audio{}, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", e.baseURL, e.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Audio{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.client.Do(req)
	if err != nil {
		return Audio{}, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Audio{}, fmt.Errorf("elevenlabs returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, elevenLabsMaxAudio+1))
	if err != nil {
		return Audio{}, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(data) == 0 {
		return Audio{}, fmt.Errorf("elevenlabs returned no audio")
	}
	if len(data) > elevenLabsMaxAudio {
		return Audio{}, fmt.Errorf("elevenlabs audio too large: over %d bytes", elevenLabsMaxAudio)
	}

	return Audio{Data: data, Format: "mp3"}, nil
}

// Ensure ElevenLabs implements Provider.
var _ Provider = (*ElevenLabs)(nil)
