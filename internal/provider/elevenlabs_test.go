package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestElevenLabs_Available(t *testing.T) {
	withKey := NewElevenLabs(ElevenLabsConfig{APIKey: "xi-key"})
	if err := withKey.Available(); err != nil {
		t.Errorf("Available with key = %v, want nil", err)
	}

	withoutKey := NewElevenLabs(ElevenLabsConfig{})
	err := withoutKey.Available()
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Available without key = %v, want ErrUnavailable", err)
	}
}

func TestElevenLabs_Synthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotReq elevenLabsRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	p := NewElevenLabs(ElevenLabsConfig{
		APIKey:  "xi-key",
		VoiceID: "voice-123",
		BaseURL: srv.URL,
	})

	audio, err := p.Synthesize(context.Background(), "Work complete!")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if string(audio.Data) != "mp3-bytes" || audio.Format != "mp3" {
		t.Errorf("audio = %q (%s), want mp3-bytes (mp3)", audio.Data, audio.Format)
	}
	if gotPath != "/v1/text-to-speech/voice-123" {
		t.Errorf("request path = %s, want /v1/text-to-speech/voice-123", gotPath)
	}
	if gotKey != "xi-key" {
		t.Errorf("xi-api-key header = %q, want xi-key", gotKey)
	}
	if gotReq.Text != "Work complete!" {
		t.Errorf("request text = %q, want the phrase", gotReq.Text)
	}
	if gotReq.ModelID == "" {
		t.Error("request carried no model_id")
	}
}

func TestElevenLabs_SynthesizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewElevenLabs(ElevenLabsConfig{APIKey: "xi-key", BaseURL: srv.URL})

	_, err := p.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for HTTP 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q does not name the HTTP status", err)
	}
}

func TestElevenLabs_SynthesizeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewElevenLabs(ElevenLabsConfig{APIKey: "xi-key", BaseURL: srv.URL})

	if _, err := p.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty audio response")
	}
}
